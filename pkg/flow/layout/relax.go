package layout

import (
	"sort"

	"github.com/flowviz/sankey/pkg/flow"
)

// relax nudges nodes toward the value-weighted vertical center of their
// connected neighbors for a fixed number of iterations. Damping decays
// linearly from 1 to 0 across the iterations, so the influence of each pass
// fades out and the geometry settles deterministically. Termination comes
// from the iteration count alone, never convergence detection.
//
// Each iteration sweeps forward (left to right, pulled by incoming
// neighbors) and then backward (right to left, pulled by outgoing
// neighbors), resolving collisions per column after each move.
func relax(columns [][]*flow.Node, cfg Config) {
	for i := 0; i < cfg.Iterations; i++ {
		damping := 1 - float64(i)/float64(cfg.Iterations)

		// Forward pass: column 0 has no incoming neighbors to follow.
		for d := 1; d < len(columns); d++ {
			for _, n := range columns[d] {
				nudge(n, n.TargetLinks, linkSource, damping)
			}
			resolveCollisions(columns[d], cfg)
		}

		// Backward pass: the last column has no outgoing neighbors.
		for d := len(columns) - 2; d >= 0; d-- {
			for _, n := range columns[d] {
				nudge(n, n.SourceLinks, linkTarget, damping)
			}
			resolveCollisions(columns[d], cfg)
		}
	}
}

func linkSource(l *flow.Link) *flow.Node { return l.Source }
func linkTarget(l *flow.Link) *flow.Node { return l.Target }

// nudge moves n toward the value-weighted mean center of the neighbors on
// the given links. Nodes with no links, or links totalling zero value, are
// left where they are.
func nudge(n *flow.Node, links []*flow.Link, neighbor func(*flow.Link) *flow.Node, damping float64) {
	if len(links) == 0 {
		return
	}
	var weighted, total float64
	for _, l := range links {
		weighted += neighbor(l).Center() * l.Value
		total += l.Value
	}
	if total <= 0 {
		return
	}
	n.Y += (weighted/total - n.Center()) * damping
}

// resolveCollisions removes vertical overlaps within one column. Nodes are
// sorted by current y (stable, the documented tie-break for equal
// positions), swept top to bottom enforcing the minimum gap, and - if the
// last node then spills past the usable bottom bound - swept bottom to top
// pulling nodes up just enough to restore the gap without reordering.
func resolveCollisions(col []*flow.Node, cfg Config) {
	sort.SliceStable(col, func(i, j int) bool { return col[i].Y < col[j].Y })

	y := cfg.Padding.Top
	for _, n := range col {
		if n.Y < y {
			n.Y = y
		}
		y = n.Y + n.Height + cfg.NodePadding
	}

	if bottom := cfg.bottomBound(); y-cfg.NodePadding > bottom {
		y = bottom
		for i := len(col) - 1; i >= 0; i-- {
			n := col[i]
			if n.Y+n.Height > y {
				n.Y = y - n.Height
			}
			y = n.Y - cfg.NodePadding
		}
	}
}
