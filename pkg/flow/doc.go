// Package flow defines the weighted, directed flow graph that the layout
// engine positions and the analyzer summarizes.
//
// A [Graph] owns its nodes (keyed by unique ID) and links. Links hold
// references to their endpoint nodes, and nodes hold ordered collections of
// their incoming and outgoing links, so the reference shape is cyclic by
// construction. No layout step copies nodes or links - all geometry is
// written in place through the graph.
//
// # Building a graph
//
//	g := flow.New()
//	_ = g.AddNode(flow.Node{ID: "visit"})
//	_ = g.AddNode(flow.Node{ID: "signup"})
//	_, _ = g.AddLink("visit", "signup", 120)
//
// Graphs are usually built by [github.com/flowviz/sankey/pkg/flow/transform]
// from tabular rows and positioned by
// [github.com/flowviz/sankey/pkg/flow/layout].
//
// # Traversal
//
// Downstream and Upstream walk reachability with an explicit stack and
// visited set, so they are safe on cyclic graphs and graphs deep enough to
// threaten the call stack.
package flow
