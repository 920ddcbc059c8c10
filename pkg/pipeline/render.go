package pipeline

import (
	"fmt"

	"github.com/flowviz/sankey/pkg/chart"
	"github.com/flowviz/sankey/pkg/flow"
	"github.com/flowviz/sankey/pkg/render"
	"github.com/flowviz/sankey/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
func Render(c chart.Chart, g *flow.Graph, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(g, c, opts)
	}
	return renderSankey(c, opts)
}

// renderSankey generates Sankey diagram outputs.
func renderSankey(c chart.Chart, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(c, svgOpts...)
		case FormatPNG:
			data, err = render.ToPNG(render.RenderSVG(c, svgOpts...), 2.0)
		case FormatJSON:
			data, err = render.RenderJSON(c, render.WithJSONSize(opts.Layout.Width, opts.Layout.Height))
		case FormatDOT:
			return nil, fmt.Errorf("format dot requires kind nodelink")
		default:
			return nil, fmt.Errorf("unsupported sankey format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates node-link diagram outputs.
// The DOT source is generated on demand from the flow graph.
func renderNodelink(g *flow.Graph, c chart.Chart, opts Options) (map[string][]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("nodelink rendering requires the flow graph")
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Weights: opts.Weights})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, 2.0)
		case FormatJSON:
			data, err = render.RenderJSON(c, render.WithJSONSize(opts.Layout.Width, opts.Layout.Height))
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options from pipeline options.
func buildSVGOptions(opts Options) []render.SVGOption {
	svgOpts := []render.SVGOption{
		render.WithSize(opts.Layout.Width, opts.Layout.Height),
	}
	if opts.Labels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, render.WithInteraction())
	}
	if opts.LinkOpacity > 0 && opts.LinkOpacity != DefaultLinkOpacity {
		svgOpts = append(svgOpts, render.WithLinkOpacity(opts.LinkOpacity))
	}
	return svgOpts
}
