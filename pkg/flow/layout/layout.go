package layout

import "github.com/flowviz/sankey/pkg/flow"

// Compute turns a weighted, directed flow graph into fully positioned
// two-dimensional geometry: every node gets a column index, pixel position,
// width and height; every link gets a thickness and vertical offsets at both
// endpoints. The graph is mutated in place and returned for convenience.
//
// The stages run in a fixed sequence: depth assignment, value computation,
// horizontal placement, initial vertical placement, barycenter relaxation
// with collision resolution, and link offset computation.
//
// Compute never fails. Empty graphs are returned unchanged, fully cyclic
// graphs collapse to a single column, and disconnected components are
// placed per node without corrupting the rest of the layout. The pass is
// synchronous, deterministic and idempotent: running it twice on an
// unmutated graph reproduces identical geometry. The same graph must not be
// handed to Compute concurrently; callers treat the result as an immutable
// snapshot until the next full recomputation.
func Compute(g *flow.Graph, cfg Config) *flow.Graph {
	cfg = cfg.withDefaults()
	if g.NodeCount() == 0 {
		return g
	}

	maxDepth := assignDepths(g, cfg.Align)
	computeValues(g)
	placeColumns(g, cfg, maxDepth)

	columns := buildColumns(g, maxDepth)
	initialPlace(columns, cfg)
	relax(columns, cfg)
	assignOffsets(g)

	return g
}
