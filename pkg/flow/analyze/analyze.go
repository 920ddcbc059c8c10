// Package analyze derives journey metrics from a flow graph.
//
// The analyzer shares the graph's traversal structure but none of its
// geometry: it can run before or after layout, on the same graph instance,
// without touching positional fields.
package analyze

import "github.com/flowviz/sankey/pkg/flow"

// Metrics summarizes the flow through one node.
type Metrics struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	Inflow         float64 `json:"inflow"`
	Outflow        float64 `json:"outflow"`
	DropOff        float64 `json:"drop_off"`        // inflow - outflow
	DropOffRate    float64 `json:"drop_off_rate"`   // dropOff / inflow, 0 when no inflow
	ConversionRate float64 `json:"conversion_rate"` // outflow / inflow, 1 for pure sources
	IsSource       bool    `json:"is_source"`       // no incoming links
	IsSink         bool    `json:"is_sink"`         // no outgoing links
}

// Analyze computes per-node journey metrics in graph insertion order.
//
// A pure source (outflow but no inflow) converts at rate 1; a node with
// neither inflow nor outflow converts at rate 0. Every ratio guards its own
// zero denominator.
func Analyze(g *flow.Graph) []Metrics {
	nodes := g.Nodes()
	out := make([]Metrics, 0, len(nodes))
	for _, n := range nodes {
		var inflow, outflow float64
		for _, l := range n.TargetLinks {
			inflow += l.Value
		}
		for _, l := range n.SourceLinks {
			outflow += l.Value
		}

		m := Metrics{
			ID:       n.ID,
			Label:    n.DisplayLabel(),
			Inflow:   inflow,
			Outflow:  outflow,
			DropOff:  inflow - outflow,
			IsSource: len(n.TargetLinks) == 0,
			IsSink:   len(n.SourceLinks) == 0,
		}
		if inflow > 0 {
			m.DropOffRate = m.DropOff / inflow
			m.ConversionRate = outflow / inflow
		} else if outflow > 0 {
			m.ConversionRate = 1
		}
		out = append(out, m)
	}
	return out
}
