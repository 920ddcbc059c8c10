// Package transform builds a flow graph from tabular rows.
//
// Rows are mapped through a [Mapping] naming the source, target and value
// columns. Rows with an empty endpoint or a non-positive value are silently
// dropped, duplicate (source,target) pairs are aggregated by summing their
// values before link creation, and nodes receive display colors from a
// fixed palette in first-seen order.
package transform

import (
	"fmt"
	"strconv"

	"github.com/flowviz/sankey/pkg/flow"
)

// Default column names used when a mapping field is left empty.
const (
	DefaultSourceField = "source"
	DefaultTargetField = "target"
	DefaultValueField  = "value"
)

// Palette is the fixed node color cycle, indexed by first-seen order and
// wrapping modulo its length.
var Palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Mapping names the row fields holding the link endpoints and value.
type Mapping struct {
	SourceField string `json:"source_field" toml:"source_field"`
	TargetField string `json:"target_field" toml:"target_field"`
	ValueField  string `json:"value_field" toml:"value_field"`
}

// withDefaults fills empty mapping fields with the conventional names.
func (m Mapping) withDefaults() Mapping {
	if m.SourceField == "" {
		m.SourceField = DefaultSourceField
	}
	if m.TargetField == "" {
		m.TargetField = DefaultTargetField
	}
	if m.ValueField == "" {
		m.ValueField = DefaultValueField
	}
	return m
}

// Row is a single tabular record keyed by column name.
type Row map[string]string

// FromRows aggregates tabular rows into a flow graph.
//
// The value column is parsed as a float; rows whose value fails to parse
// are treated like non-positive values and dropped. FromRows itself never
// errors - malformed rows degrade to omissions, matching the engine's
// no-failure posture.
func FromRows(rows []Row, m Mapping) *flow.Graph {
	m = m.withDefaults()

	type pair struct{ source, target string }
	totals := make(map[pair]float64)
	var order []pair
	var seen []string
	known := make(map[string]bool)

	for _, row := range rows {
		source := row[m.SourceField]
		target := row[m.TargetField]
		if source == "" || target == "" {
			continue
		}
		value, err := strconv.ParseFloat(row[m.ValueField], 64)
		if err != nil || value <= 0 {
			continue
		}

		for _, id := range []string{source, target} {
			if !known[id] {
				known[id] = true
				seen = append(seen, id)
			}
		}

		p := pair{source, target}
		if _, ok := totals[p]; !ok {
			order = append(order, p)
		}
		totals[p] += value
	}

	g := flow.New()
	for i, id := range seen {
		_ = g.AddNode(flow.Node{
			ID:    id,
			Label: id,
			Color: Palette[i%len(Palette)],
		})
	}
	for _, p := range order {
		if _, err := g.AddLink(p.source, p.target, totals[p]); err != nil {
			// Unreachable: every endpoint was added above.
			panic(fmt.Sprintf("transform: %v", err))
		}
	}
	return g
}
