package layout_test

import (
	"fmt"

	"github.com/flowviz/sankey/pkg/flow"
	"github.com/flowviz/sankey/pkg/flow/layout"
)

func ExampleCompute() {
	g := flow.New()
	_ = g.AddNode(flow.Node{ID: "visit"})
	_ = g.AddNode(flow.Node{ID: "signup"})
	_ = g.AddNode(flow.Node{ID: "purchase"})
	_, _ = g.AddLink("visit", "signup", 100)
	_, _ = g.AddLink("signup", "purchase", 40)

	layout.Compute(g, layout.DefaultConfig())

	for _, n := range g.Nodes() {
		fmt.Printf("%s: depth=%d value=%.0f\n", n.ID, n.Depth, n.Value)
	}
	// Output:
	// visit: depth=0 value=100
	// signup: depth=1 value=100
	// purchase: depth=2 value=40
}

func ExampleCompute_degenerate() {
	// Compute never fails: an empty graph passes through unchanged.
	g := layout.Compute(flow.New(), layout.DefaultConfig())
	fmt.Println("nodes:", g.NodeCount())
	// Output:
	// nodes: 0
}
