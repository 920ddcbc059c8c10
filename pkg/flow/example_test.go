package flow_test

import (
	"fmt"

	"github.com/flowviz/sankey/pkg/flow"
)

func ExampleGraph_basic() {
	// A simple funnel: visit -> signup -> purchase
	g := flow.New()
	_ = g.AddNode(flow.Node{ID: "visit"})
	_ = g.AddNode(flow.Node{ID: "signup"})
	_ = g.AddNode(flow.Node{ID: "purchase"})
	_, _ = g.AddLink("visit", "signup", 120)
	_, _ = g.AddLink("signup", "purchase", 45)

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Links:", g.LinkCount())
	// Output:
	// Nodes: 3
	// Links: 2
}

func ExampleGraph_Sources() {
	g := flow.New()
	_ = g.AddNode(flow.Node{ID: "ads"})
	_ = g.AddNode(flow.Node{ID: "organic"})
	_ = g.AddNode(flow.Node{ID: "landing"})
	_, _ = g.AddLink("ads", "landing", 80)
	_, _ = g.AddLink("organic", "landing", 40)

	for _, n := range g.Sources() {
		fmt.Println(n.ID)
	}
	// Output:
	// ads
	// organic
}

func ExampleGraph_Downstream() {
	g := flow.New()
	_ = g.AddNode(flow.Node{ID: "home"})
	_ = g.AddNode(flow.Node{ID: "search"})
	_ = g.AddNode(flow.Node{ID: "checkout"})
	_, _ = g.AddLink("home", "search", 100)
	_, _ = g.AddLink("search", "checkout", 30)

	for _, n := range g.Downstream("home") {
		fmt.Println(n.ID)
	}
	// Output:
	// search
	// checkout
}
