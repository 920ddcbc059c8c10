package layout

import "github.com/flowviz/sankey/pkg/flow"

// placeColumns assigns each node its horizontal pixel position and render
// width. All nodes share the configured render width; the horizontal step
// spreads the columns evenly across the canvas minus padding. A single
// column (maxDepth 0) collapses the step to 0 instead of dividing by zero.
func placeColumns(g *flow.Graph, cfg Config, maxDepth int) {
	step := 0.0
	if maxDepth > 0 {
		step = (cfg.Width - cfg.Padding.Left - cfg.Padding.Right - cfg.NodeWidth) / float64(maxDepth)
	}
	for _, n := range g.Nodes() {
		n.X = cfg.Padding.Left + float64(n.Depth)*step
		n.Width = cfg.NodeWidth
	}
}
