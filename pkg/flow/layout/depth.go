package layout

import "github.com/flowviz/sankey/pkg/flow"

// assignDepths gives every node a column index via breadth-first layering
// from the zero-inflow sources and returns the maximum assigned depth.
//
// Each node is visited exactly once: the frontier starts at the sources with
// depth 0 and every visited node propagates depth+1 to its not-yet-visited
// successors. Nodes the traversal never reaches (disconnected components)
// keep depth 0. A graph with no source at all - entirely cyclic - also
// leaves every node at depth 0, a deliberate degenerate rendering rather
// than an error.
//
// Under the justify alignment every sink whose depth is short of the
// discovered maximum is pushed to that maximum, so all terminal nodes align
// in the rightmost column. The other alignment modes need no depth change
// here; they are consumed by column placement.
func assignDepths(g *flow.Graph, align string) int {
	for _, n := range g.Nodes() {
		n.Depth = 0
	}

	sources := g.Sources()
	if len(sources) == 0 {
		return 0
	}

	visited := make(map[*flow.Node]bool, g.NodeCount())
	frontier := make([]*flow.Node, 0, len(sources))
	for _, n := range sources {
		visited[n] = true
		frontier = append(frontier, n)
	}

	maxDepth := 0
	for len(frontier) > 0 {
		var next []*flow.Node
		for _, n := range frontier {
			if n.Depth > maxDepth {
				maxDepth = n.Depth
			}
			for _, l := range n.SourceLinks {
				if visited[l.Target] {
					continue
				}
				visited[l.Target] = true
				l.Target.Depth = n.Depth + 1
				next = append(next, l.Target)
			}
		}
		frontier = next
	}

	if align == AlignJustify {
		for _, n := range g.Nodes() {
			if len(n.SourceLinks) == 0 && n.Depth < maxDepth {
				n.Depth = maxDepth
			}
		}
	}

	return maxDepth
}
