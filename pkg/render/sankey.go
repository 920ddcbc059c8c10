package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/flowviz/sankey/pkg/chart"
)

const defaultFallbackColor = "#888888"

const linkInteractionCSS = `
    .link { transition: opacity 0.2s ease; }
    .link.highlight { opacity: 0.85; }
    .node { transition: stroke-width 0.2s ease; }
    .node.highlight { stroke-width: 2; }`

const linkInteractionJS = `
    document.querySelectorAll('.node').forEach(el => {
      const id = el.dataset.node;
      el.addEventListener('mouseenter', () => {
        document.querySelectorAll('.link').forEach(l => {
          l.classList.toggle('highlight', l.dataset.source === id || l.dataset.target === id);
        });
        el.classList.add('highlight');
      });
      el.addEventListener('mouseleave', () => {
        document.querySelectorAll('.link.highlight, .node.highlight').forEach(x => x.classList.remove('highlight'));
      });
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width       float64
	height      float64
	labels      bool
	interactive bool
	opacity     float64
	fontSize    float64
}

// WithSize sets the canvas size. Without this option the canvas is sized
// from the chart's geometry extents.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width = width; r.height = height }
}

// WithLabels draws node labels next to each rectangle.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithInteraction embeds the hover CSS and script that highlights the
// ribbons attached to a node.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithLinkOpacity sets ribbon fill opacity (default 0.5).
func WithLinkOpacity(opacity float64) SVGOption {
	return func(r *svgRenderer) { r.opacity = opacity }
}

// RenderSVG draws a positioned chart as a Sankey diagram.
//
// Every node becomes a filled rectangle and every link a ribbon filled
// with its source node's color. Ribbons are drawn first so rectangles
// sit on top of them. The result is a standalone SVG document.
func RenderSVG(c chart.Chart, opts ...SVGOption) []byte {
	r := newSVGRenderer(c, opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)

	nodes := make(map[string]chart.Node, len(c.Nodes))
	for _, n := range c.Nodes {
		nodes[n.ID] = n
	}

	for _, l := range c.Links {
		renderRibbon(&buf, &r, nodes, l)
	}
	for _, n := range c.Nodes {
		renderNode(&buf, n)
	}
	if r.labels {
		for _, n := range c.Nodes {
			renderLabel(&buf, &r, n)
		}
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", linkInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", linkInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(c chart.Chart, opts ...SVGOption) svgRenderer {
	r := svgRenderer{opacity: 0.5, fontSize: 12}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 || r.height <= 0 {
		w, h := extents(c)
		r.width, r.height = w, h
	}
	return r
}

// extents derives a canvas size from chart geometry, with a margin
// matching the default layout padding.
func extents(c chart.Chart) (float64, float64) {
	const margin = 16.0
	var maxX, maxY float64
	for _, n := range c.Nodes {
		if x := n.X + n.Width; x > maxX {
			maxX = x
		}
		if y := n.Y + n.Height; y > maxY {
			maxY = y
		}
	}
	return maxX + margin, maxY + margin
}

func renderNode(buf *bytes.Buffer, n chart.Node) {
	color := n.Color
	if color == "" {
		color = defaultFallbackColor
	}
	fmt.Fprintf(buf,
		`  <rect class="node" data-node=%q x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#000" stroke-opacity="0.25"/>`+"\n",
		html.EscapeString(n.ID), n.X, n.Y, n.Width, n.Height, color)
}

// renderRibbon draws one link as a closed band of two cubic Bezier curves.
// The band leaves the source's right edge spanning [SY, SY+Width] and
// enters the target's left edge spanning [TY, TY+Width], in node-local
// coordinates. Control points sit at the horizontal midpoint, giving the
// familiar smooth S-curve.
func renderRibbon(buf *bytes.Buffer, r *svgRenderer, nodes map[string]chart.Node, l chart.Link) {
	src, okS := nodes[l.Source]
	tgt, okT := nodes[l.Target]
	if !okS || !okT {
		return
	}

	x0 := src.X + src.Width
	x1 := tgt.X
	xm := (x0 + x1) / 2

	ys0 := src.Y + l.SY
	ys1 := ys0 + l.Width
	yt0 := tgt.Y + l.TY
	yt1 := yt0 + l.Width

	color := src.Color
	if color == "" {
		color = defaultFallbackColor
	}

	fmt.Fprintf(buf,
		`  <path class="link" data-source=%q data-target=%q d="M%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f L%.2f,%.2f C%.2f,%.2f %.2f,%.2f %.2f,%.2f Z" fill="%s" fill-opacity="%.2f"/>`+"\n",
		html.EscapeString(l.Source), html.EscapeString(l.Target),
		x0, ys0,
		xm, ys0, xm, yt0, x1, yt0,
		x1, yt1,
		xm, yt1, xm, ys1, x0, ys1,
		color, r.opacity)
}

// renderLabel places the node label beside the rectangle: to the right
// for nodes in the left half of the canvas, to the left otherwise.
func renderLabel(buf *bytes.Buffer, r *svgRenderer, n chart.Node) {
	label := n.Label
	if label == "" {
		label = n.ID
	}

	x := n.X + n.Width + 6
	anchor := "start"
	if n.X+n.Width/2 > r.width/2 {
		x = n.X - 6
		anchor = "end"
	}
	y := n.Y + n.Height/2

	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-family="sans-serif" font-size="%.0f">%s</text>`+"\n",
		x, y, anchor, r.fontSize, html.EscapeString(label))
}
