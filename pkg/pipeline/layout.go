package pipeline

import (
	"github.com/flowviz/sankey/pkg/chart"
	"github.com/flowviz/sankey/pkg/flow"
	"github.com/flowviz/sankey/pkg/flow/layout"
)

// GenerateChart computes geometry for the graph and exports it as a
// serializable chart. This is the unified entry point for the layout
// stage; both diagram kinds position the same way, nodelink rendering
// simply ignores the geometry.
func GenerateChart(g *flow.Graph, opts Options) chart.Chart {
	positioned := layout.Compute(g, opts.Layout)
	return chart.FromFlow(positioned)
}
