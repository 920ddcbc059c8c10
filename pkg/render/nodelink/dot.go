package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/flowviz/sankey/pkg/flow"
	"github.com/flowviz/sankey/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Weights labels each edge with its flow value.
	// When false, edges are drawn unlabeled.
	Weights bool
}

// ToDOT converts a flow graph to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using
// [RenderSVG] or [RenderPNG].
//
// The diagram flows left to right (rankdir=LR) to match the Sankey
// orientation. Source nodes (no incoming links) are filled light blue,
// sinks light grey.
func ToDOT(g *flow.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(n)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		if opts.Weights {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.Source.ID, l.Target.ID, formatValue(l.Value))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", l.Source.ID, l.Target.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *flow.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.DisplayLabel())}
	switch {
	case len(n.TargetLinks) == 0 && len(n.SourceLinks) > 0:
		attrs = append(attrs, "fillcolor=lightblue")
	case len(n.SourceLinks) == 0 && len(n.TargetLinks) > 0:
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or conversion with [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
