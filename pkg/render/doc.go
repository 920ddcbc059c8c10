// Package render provides visualization rendering for flow charts.
//
// # Overview
//
// This package contains the rendering pipeline that transforms positioned
// charts into visual outputs. It provides:
//
//   - Sankey diagrams as SVG ([RenderSVG]) and JSON ([RenderJSON])
//   - Generic format conversion (SVG to PNG via [ToPNG])
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Sankey Diagrams
//
// [RenderSVG] draws a positioned chart as the classic Sankey picture:
// node rectangles in columns, connected by ribbons whose thickness is
// proportional to flow value. Ribbons are cubic Bezier bands that leave
// the right edge of the source and enter the left edge of the target.
//
//	c := chart.FromFlow(layout.Compute(g, cfg))
//	svg := render.RenderSVG(c, render.WithLabels())
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the underlying flow graph as a
// traditional directed diagram using Graphviz, useful for inspecting
// topology before layout.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/flowviz/sankey/pkg/render/nodelink
package render
