package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// ToPNG converts SVG bytes to PNG using the external rsvg-convert tool
// (from librsvg). A scale of 2.0 produces a 2x resolution image suitable
// for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1.0
	}

	cmd := exec.Command("rsvg-convert", "--format", "png", "--zoom", fmt.Sprintf("%g", scale))
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath("rsvg-convert"); lookErr != nil {
			return nil, fmt.Errorf("rsvg-convert not found (install librsvg): %w", lookErr)
		}
		return nil, fmt.Errorf("rsvg-convert: %w: %s", err, stderr.String())
	}

	return out.Bytes(), nil
}
