package layout

import (
	"sort"

	"github.com/flowviz/sankey/pkg/flow"
)

// buildColumns groups nodes by depth into contiguous columns ordered left to
// right. Within a column, nodes appear in graph insertion order.
func buildColumns(g *flow.Graph, maxDepth int) [][]*flow.Node {
	columns := make([][]*flow.Node, maxDepth+1)
	for _, n := range g.Nodes() {
		columns[n.Depth] = append(columns[n.Depth], n)
	}
	return columns
}

// globalScale returns the pixels-per-flow-unit factor shared by every
// column: the minimum of each column's own candidate scale. One unit of
// flow must occupy identical pixel height in all columns, otherwise a
// link's thickness would differ between its source and target ends. The
// price is that a column with an unusually large total shrinks every other
// column's node heights; that coupling is intended.
//
// Columns whose total value is zero do not constrain the scale. When no
// column has positive total value the scale is 0.
func globalScale(columns [][]*flow.Node, cfg Config) float64 {
	scale := 0.0
	found := false
	for _, col := range columns {
		var total float64
		for _, n := range col {
			total += n.Value
		}
		if total <= 0 {
			continue
		}
		spacing := float64(len(col)-1) * cfg.NodePadding
		candidate := (cfg.innerHeight() - spacing) / total
		if !found || candidate < scale {
			scale = candidate
			found = true
		}
	}
	return scale
}

// initialPlace seeds vertical geometry: within each column nodes are sorted
// by descending value (stable, so equal-value nodes keep their original
// relative order) and stacked top to bottom separated by the node padding.
// Heights get a 1-pixel floor so zero-value nodes stay visible.
func initialPlace(columns [][]*flow.Node, cfg Config) {
	scale := globalScale(columns, cfg)
	for _, col := range columns {
		sort.SliceStable(col, func(i, j int) bool { return col[i].Value > col[j].Value })
		y := cfg.Padding.Top
		for _, n := range col {
			h := n.Value * scale
			if h < 1 {
				h = 1
			}
			n.Height = h
			n.Y = y
			y += h + cfg.NodePadding
		}
	}
}
