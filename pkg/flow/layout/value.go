package layout

import "github.com/flowviz/sankey/pkg/flow"

// computeValues sets every node's value to max(total inflow, total outflow).
//
// Taking the maximum rather than an average guarantees the narrower side of
// a node has spare vertical room, so link offsets never have to compress the
// wider side's ribbons. Pure function of the link set, order-independent and
// idempotent.
func computeValues(g *flow.Graph) {
	for _, n := range g.Nodes() {
		var in, out float64
		for _, l := range n.TargetLinks {
			in += l.Value
		}
		for _, l := range n.SourceLinks {
			out += l.Value
		}
		if in > out {
			n.Value = in
		} else {
			n.Value = out
		}
	}
}
