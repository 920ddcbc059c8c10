package layout

import (
	"sort"

	"github.com/flowviz/sankey/pkg/flow"
)

// assignOffsets orders each node's links and computes per-link thickness and
// vertical offsets at both endpoints.
//
// At every node, outgoing links are sorted by the target node's vertical
// position and incoming links by the source node's vertical position, which
// minimizes ribbon crossings right at the node boundary. Outgoing widths are
// proportional to value so they exactly tile the node's height; incoming
// offsets reuse the width already fixed on the source side - a link's
// thickness is decided once, by its source node, and carried verbatim to
// its target.
func assignOffsets(g *flow.Graph) {
	nodes := g.Nodes()

	for _, n := range nodes {
		sort.SliceStable(n.SourceLinks, func(i, j int) bool {
			return n.SourceLinks[i].Target.Y < n.SourceLinks[j].Target.Y
		})
		sort.SliceStable(n.TargetLinks, func(i, j int) bool {
			return n.TargetLinks[i].Source.Y < n.TargetLinks[j].Source.Y
		})
	}

	// Source side first: widths must exist before targets accumulate them.
	for _, n := range nodes {
		var total float64
		for _, l := range n.SourceLinks {
			total += l.Value
		}
		if total <= 0 {
			continue
		}
		sy := 0.0
		for _, l := range n.SourceLinks {
			l.Width = l.Value / total * n.Height
			l.SY = sy
			sy += l.Width
		}
	}

	for _, n := range nodes {
		ty := 0.0
		for _, l := range n.TargetLinks {
			l.TY = ty
			ty += l.Width
		}
	}
}
