package analyze

import (
	"math"
	"testing"

	"github.com/flowviz/sankey/pkg/flow"
)

func funnel(t *testing.T) *flow.Graph {
	t.Helper()
	g := flow.New()
	for _, id := range []string{"visit", "signup", "purchase"} {
		if err := g.AddNode(flow.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	_, _ = g.AddLink("visit", "signup", 100)
	_, _ = g.AddLink("signup", "purchase", 40)
	return g
}

func metricsFor(t *testing.T, ms []Metrics, id string) Metrics {
	t.Helper()
	for _, m := range ms {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("no metrics for %s", id)
	return Metrics{}
}

func TestAnalyzeFunnel(t *testing.T) {
	ms := Analyze(funnel(t))
	if len(ms) != 3 {
		t.Fatalf("got %d metrics, want 3", len(ms))
	}

	visit := metricsFor(t, ms, "visit")
	if !visit.IsSource || visit.IsSink {
		t.Error("visit should be a source and not a sink")
	}
	if visit.ConversionRate != 1 {
		t.Errorf("pure source ConversionRate = %v, want 1", visit.ConversionRate)
	}

	signup := metricsFor(t, ms, "signup")
	if signup.Inflow != 100 || signup.Outflow != 40 {
		t.Errorf("signup in/out = %v/%v, want 100/40", signup.Inflow, signup.Outflow)
	}
	if signup.DropOff != 60 {
		t.Errorf("signup DropOff = %v, want 60", signup.DropOff)
	}
	if math.Abs(signup.DropOffRate-0.6) > 1e-9 {
		t.Errorf("signup DropOffRate = %v, want 0.6", signup.DropOffRate)
	}
	if math.Abs(signup.ConversionRate-0.4) > 1e-9 {
		t.Errorf("signup ConversionRate = %v, want 0.4", signup.ConversionRate)
	}

	purchase := metricsFor(t, ms, "purchase")
	if !purchase.IsSink {
		t.Error("purchase should be a sink")
	}
	if purchase.ConversionRate != 0 {
		t.Errorf("sink ConversionRate = %v, want 0", purchase.ConversionRate)
	}
}

func TestAnalyzeIsolatedNode(t *testing.T) {
	g := flow.New()
	_ = g.AddNode(flow.Node{ID: "alone"})

	m := Analyze(g)[0]
	if m.ConversionRate != 0 || m.DropOffRate != 0 {
		t.Errorf("isolated node rates = %v/%v, want 0/0", m.ConversionRate, m.DropOffRate)
	}
	if !m.IsSource || !m.IsSink {
		t.Error("isolated node is both source and sink")
	}
}

func TestAnalyzeEmptyGraph(t *testing.T) {
	if ms := Analyze(flow.New()); len(ms) != 0 {
		t.Errorf("got %d metrics for empty graph, want 0", len(ms))
	}
}
