package render

import (
	"encoding/json"

	"github.com/flowviz/sankey/pkg/chart"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	width  float64
	height float64
}

// WithJSONSize records the canvas size in the JSON output. Without this
// option the size is derived from the chart's geometry extents.
func WithJSONSize(width, height float64) JSONOption {
	return func(r *jsonRenderer) { r.width = width; r.height = height }
}

type jsonOutput struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Nodes  []chart.Node `json:"nodes"`
	Links  []chart.Link `json:"links"`
}

// RenderJSON exports the positioned chart as a pretty-printed JSON
// document. This is the primary data interchange format, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering via [chart.Unmarshal]
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify c and is safe to call concurrently.
func RenderJSON(c chart.Chart, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 || r.height <= 0 {
		r.width, r.height = extents(c)
	}

	out := jsonOutput{
		Width:  r.width,
		Height: r.height,
		Nodes:  c.Nodes,
		Links:  c.Links,
	}
	if out.Nodes == nil {
		out.Nodes = []chart.Node{}
	}
	if out.Links == nil {
		out.Links = []chart.Link{}
	}

	return json.MarshalIndent(out, "", "  ")
}
