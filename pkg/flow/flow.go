package flow

import "errors"

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddLink] when the source
	// node does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddLink] when the target
	// node does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Node represents an accumulation or branch point of flow. The layout engine
// fills in Value, Depth and the pixel geometry; everything else is supplied
// when the graph is built.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID    string // Unique identifier
	Label string // Display label (defaults to ID when empty)
	Color string // Display color assigned by the transform step

	// Computed by the layout engine.
	Value  float64 // max(total inflow, total outflow)
	Depth  int     // Column index (0 = leftmost)
	X      float64 // Left edge in pixels
	Y      float64 // Top edge in pixels
	Width  float64 // Render width in pixels
	Height float64 // Render height in pixels

	// SourceLinks are the links leaving this node, TargetLinks the links
	// arriving at it. Both are ordered by the layout engine so that link
	// offsets tile the node's height without gaps.
	SourceLinks []*Link
	TargetLinks []*Link
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Center returns the vertical center of the node in pixels.
func (n *Node) Center() float64 { return n.Y + n.Height/2 }

// Link is a directed, weighted edge between two nodes. Source and Target are
// shared references into the owning Graph's node collection, never copies.
type Link struct {
	Source *Node
	Target *Node
	Value  float64 // Flow quantity, always positive

	// Computed by the layout engine.
	Width float64 // Ribbon thickness in pixels
	SY    float64 // Vertical offset at the source node's right edge
	TY    float64 // Vertical offset at the target node's left edge
}

// Graph owns a node collection (unique IDs) and a link collection. It is
// built once by the transform step, mutated in place by the layout engine,
// and replaced wholesale when new data arrives.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes map[string]*Node
	order []string // node IDs in insertion order, for deterministic traversal
	links []*Link
}

// New creates an empty flow graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the ID is
// empty or ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddLink adds a directed link between two existing nodes and wires it into
// both endpoints' link collections. Returns ErrUnknownSourceNode or
// ErrUnknownTargetNode when an endpoint is missing.
//
// Duplicate (source,target) pairs are not merged here - the transform step
// aggregates rows before link creation.
func (g *Graph) AddLink(source, target string, value float64) (*Link, error) {
	src, ok := g.nodes[source]
	if !ok {
		return nil, ErrUnknownSourceNode
	}
	dst, ok := g.nodes[target]
	if !ok {
		return nil, ErrUnknownTargetNode
	}
	l := &Link{Source: src, Target: dst, Value: value}
	g.links = append(g.links, l)
	src.SourceLinks = append(src.SourceLinks, l)
	dst.TargetLinks = append(dst.TargetLinks, l)
	return l, nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the actual node in the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Links returns all links in insertion order.
func (g *Graph) Links() []*Link { return g.links }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links in the graph.
func (g *Graph) LinkCount() int { return len(g.links) }

// Sources returns nodes with no incoming links, in insertion order. These
// are the entry points of the flow (e.g. landing steps of a funnel).
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if n := g.nodes[id]; len(n.TargetLinks) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing links, in insertion order. These are
// the terminal steps of the flow.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, id := range g.order {
		if n := g.nodes[id]; len(n.SourceLinks) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Downstream returns every node reachable from id by following outgoing
// links, excluding the start node itself. The walk uses an explicit stack
// and visited set so cyclic or very deep graphs cannot exhaust the call
// stack. Returns nil if the node doesn't exist or reaches nothing.
func (g *Graph) Downstream(id string) []*Node {
	return g.walk(id, func(n *Node) []*Link { return n.SourceLinks }, func(l *Link) *Node { return l.Target })
}

// Upstream returns every node that can reach id by following outgoing links,
// excluding the start node itself. See Downstream for traversal guarantees.
func (g *Graph) Upstream(id string) []*Node {
	return g.walk(id, func(n *Node) []*Link { return n.TargetLinks }, func(l *Link) *Node { return l.Source })
}

func (g *Graph) walk(id string, edges func(*Node) []*Link, next func(*Link) *Node) []*Node {
	start, ok := g.nodes[id]
	if !ok {
		return nil
	}
	visited := map[*Node]bool{start: true}
	stack := []*Node{start}
	var result []*Node
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, l := range edges(curr) {
			n := next(l)
			if visited[n] {
				continue
			}
			visited[n] = true
			result = append(result, n)
			stack = append(stack, n)
		}
	}
	return result
}
