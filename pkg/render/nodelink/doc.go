// Package nodelink renders flow graphs as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz,
// where nodes appear as boxes connected by arrows. It's an alternative
// to the Sankey rendering for cases where topology matters more than
// flow magnitude, such as inspecting a graph before layout.
//
// # Usage
//
// Convert a flow graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Weights: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PNG output:
//
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR) with rounded
// box nodes, matching the Sankey diagram's horizontal orientation.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PNG conversion requires librsvg (rsvg-convert).
package nodelink
