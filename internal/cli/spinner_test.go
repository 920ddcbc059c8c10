package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("Rendering funnel.csv")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Rendering funnel.csv")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should report cancellation after its context is cancelled")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Rendering funnel.csv")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Rendering funnel.csv")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Rendered funnel.csv")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Rendering broken.csv")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("render failed")
}
