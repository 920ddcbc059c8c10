package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flowviz/sankey/pkg/flow"
)

// Chart is the canonical serialization format for flow graphs, with or
// without computed geometry. Used for API responses, file IO, caching and
// cross-tool compatibility. The format round-trips: import -> layout ->
// export -> re-import preserves every field.
type Chart struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// Node is the wire form of a flow node. Geometry fields are zero until the
// layout engine has run.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`

	Value  float64 `json:"value,omitempty" bson:"value,omitempty"`
	Depth  int     `json:"depth,omitempty" bson:"depth,omitempty"`
	X      float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y      float64 `json:"y,omitempty" bson:"y,omitempty"`
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`
}

// Link is the wire form of a flow link, referencing its endpoints by node ID.
type Link struct {
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Value  float64 `json:"value" bson:"value"`

	Width float64 `json:"width,omitempty" bson:"width,omitempty"`
	SY    float64 `json:"sy,omitempty" bson:"sy,omitempty"`
	TY    float64 `json:"ty,omitempty" bson:"ty,omitempty"`
}

// FromFlow converts a flow graph to its serialization format. Nodes and
// links keep their graph insertion order for deterministic output.
func FromFlow(g *flow.Graph) Chart {
	nodes := g.Nodes()
	links := g.Links()

	out := Chart{
		Nodes: make([]Node, len(nodes)),
		Links: make([]Link, len(links)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{
			ID:     n.ID,
			Label:  n.Label,
			Color:  n.Color,
			Value:  n.Value,
			Depth:  n.Depth,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		}
	}
	for i, l := range links {
		out.Links[i] = Link{
			Source: l.Source.ID,
			Target: l.Target.ID,
			Value:  l.Value,
			Width:  l.Width,
			SY:     l.SY,
			TY:     l.TY,
		}
	}
	return out
}

// ToFlow converts a Chart back to a flow graph, restoring any geometry the
// chart carries. Returns an error if node IDs collide or a link references
// a missing endpoint.
func ToFlow(c Chart) (*flow.Graph, error) {
	g := flow.New()
	for _, n := range c.Nodes {
		err := g.AddNode(flow.Node{
			ID:     n.ID,
			Label:  n.Label,
			Color:  n.Color,
			Value:  n.Value,
			Depth:  n.Depth,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		})
		if err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.ID, err)
		}
	}
	for _, cl := range c.Links {
		l, err := g.AddLink(cl.Source, cl.Target, cl.Value)
		if err != nil {
			return nil, fmt.Errorf("add link %s->%s: %w", cl.Source, cl.Target, err)
		}
		l.Width = cl.Width
		l.SY = cl.SY
		l.TY = cl.TY
	}
	return g, nil
}

// Marshal serializes a Chart to pretty-printed JSON bytes.
func Marshal(c Chart) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Chart.
func Unmarshal(data []byte) (Chart, error) {
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return Chart{}, fmt.Errorf("unmarshal chart: %w", err)
	}
	return c, nil
}

// WriteFile writes a Chart to a JSON file.
func WriteFile(c Chart, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Chart from a JSON file.
func ReadFile(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// ReadGraphFile reads a chart file and converts it straight to a flow graph.
func ReadGraphFile(path string) (*flow.Graph, error) {
	c, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ToFlow(c)
}
