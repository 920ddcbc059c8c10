package layout

import (
	"math"
	"testing"

	"github.com/flowviz/sankey/pkg/flow"
)

const tolerance = 1e-5

type link struct {
	from, to string
	value    float64
}

func build(t *testing.T, nodes []string, links []link) *flow.Graph {
	t.Helper()
	g := flow.New()
	for _, id := range nodes {
		if err := g.AddNode(flow.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, l := range links {
		if _, err := g.AddLink(l.from, l.to, l.value); err != nil {
			t.Fatalf("AddLink(%s->%s): %v", l.from, l.to, err)
		}
	}
	return g
}

func node(t *testing.T, g *flow.Graph, id string) *flow.Node {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %s missing", id)
	}
	return n
}

func TestComputeEmptyGraph(t *testing.T) {
	g := flow.New()
	got := Compute(g, DefaultConfig())
	if got != g {
		t.Error("Compute should return the same graph")
	}
	if g.NodeCount() != 0 || g.LinkCount() != 0 {
		t.Error("empty graph should stay empty")
	}
}

func TestComputeSingleNode(t *testing.T) {
	g := build(t, []string{"only"}, nil)
	Compute(g, DefaultConfig())

	n := node(t, g, "only")
	if n.Depth != 0 {
		t.Errorf("Depth = %d, want 0", n.Depth)
	}
	if n.Height != 1 {
		t.Errorf("Height = %v, want 1 (floor for zero-value nodes)", n.Height)
	}
}

func TestComputeChain(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c"},
		[]link{{"a", "b", 10}, {"b", "c", 7}},
	)
	Compute(g, DefaultConfig())

	wantDepth := map[string]int{"a": 0, "b": 1, "c": 2}
	wantValue := map[string]float64{"a": 10, "b": 10, "c": 7}
	for id, d := range wantDepth {
		if got := node(t, g, id).Depth; got != d {
			t.Errorf("%s.Depth = %d, want %d", id, got, d)
		}
	}
	for id, v := range wantValue {
		if got := node(t, g, id).Value; got != v {
			t.Errorf("%s.Value = %v, want %v", id, got, v)
		}
	}
}

func TestComputeBranchingValue(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c"},
		[]link{{"a", "b", 5}, {"a", "c", 5}},
	)
	Compute(g, DefaultConfig())

	if got := node(t, g, "a").Value; got != 10 {
		t.Errorf("a.Value = %v, want 10", got)
	}
}

func TestColumnPlacement(t *testing.T) {
	cfg := DefaultConfig()
	g := build(t,
		[]string{"a", "b", "c"},
		[]link{{"a", "b", 10}, {"b", "c", 7}},
	)
	Compute(g, cfg)

	step := (cfg.Width - cfg.Padding.Left - cfg.Padding.Right - cfg.NodeWidth) / 2
	wantX := map[string]float64{
		"a": cfg.Padding.Left,
		"b": cfg.Padding.Left + step,
		"c": cfg.Padding.Left + 2*step,
	}
	for id, x := range wantX {
		n := node(t, g, id)
		if math.Abs(n.X-x) > tolerance {
			t.Errorf("%s.X = %v, want %v", id, n.X, x)
		}
		if n.Width != cfg.NodeWidth {
			t.Errorf("%s.Width = %v, want %v", id, n.Width, cfg.NodeWidth)
		}
	}
}

func TestJustifyAlignsSinks(t *testing.T) {
	// c is a sink naturally reachable at depth 1, d at depth 2.
	g := build(t,
		[]string{"a", "b", "c", "d"},
		[]link{{"a", "b", 5}, {"a", "c", 5}, {"b", "d", 5}},
	)
	cfg := DefaultConfig()
	cfg.Align = AlignJustify
	Compute(g, cfg)

	if got := node(t, g, "c").Depth; got != 2 {
		t.Errorf("c.Depth = %d, want 2 (justified to max depth)", got)
	}
	if got := node(t, g, "d").Depth; got != 2 {
		t.Errorf("d.Depth = %d, want 2", got)
	}
}

func TestLeftAlignKeepsSinks(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c", "d"},
		[]link{{"a", "b", 5}, {"a", "c", 5}, {"b", "d", 5}},
	)
	cfg := DefaultConfig()
	cfg.Align = AlignLeft
	Compute(g, cfg)

	if got := node(t, g, "c").Depth; got != 1 {
		t.Errorf("c.Depth = %d, want 1 (left alignment leaves sinks)", got)
	}
}

func TestCyclicGraphFallsBack(t *testing.T) {
	// No zero-inflow node exists, so every node collapses to depth 0
	// rather than failing outright.
	g := build(t,
		[]string{"a", "b", "c"},
		[]link{{"a", "b", 3}, {"b", "c", 3}, {"c", "a", 3}},
	)
	Compute(g, DefaultConfig())

	for _, n := range g.Nodes() {
		if n.Depth != 0 {
			t.Errorf("%s.Depth = %d, want 0", n.ID, n.Depth)
		}
	}
}

func TestDisconnectedComponent(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "lonely"},
		[]link{{"a", "b", 4}},
	)
	// Justify would right-align the orphan (it is also a sink); left
	// alignment observes the raw depth-0 fallback.
	cfg := DefaultConfig()
	cfg.Align = AlignLeft
	Compute(g, cfg)

	if got := node(t, g, "lonely").Depth; got != 0 {
		t.Errorf("lonely.Depth = %d, want 0", got)
	}
	if got := node(t, g, "b").Depth; got != 1 {
		t.Errorf("b.Depth = %d, want 1 (orphan must not corrupt the rest)", got)
	}
}

func TestOutgoingWidthsTileHeight(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c", "d"},
		[]link{{"a", "b", 6}, {"a", "c", 3}, {"a", "d", 1}, {"b", "d", 6}, {"c", "d", 3}},
	)
	Compute(g, DefaultConfig())

	for _, n := range g.Nodes() {
		if len(n.SourceLinks) == 0 {
			continue
		}
		var sum float64
		for _, l := range n.SourceLinks {
			sum += l.Width
		}
		if math.Abs(sum-n.Height) > tolerance {
			t.Errorf("%s: sum of outgoing widths = %v, height = %v", n.ID, sum, n.Height)
		}
	}
}

func TestIncomingWidthsTileHeightWhenConserving(t *testing.T) {
	// Flow-conserving graph: inflow equals outflow at every interior node,
	// so the source-fixed widths also tile the target side exactly.
	g := build(t,
		[]string{"a", "b", "c", "d"},
		[]link{{"a", "c", 4}, {"b", "c", 6}, {"c", "d", 10}},
	)
	Compute(g, DefaultConfig())

	for _, n := range g.Nodes() {
		if len(n.TargetLinks) == 0 {
			continue
		}
		var sum float64
		for _, l := range n.TargetLinks {
			sum += l.Width
		}
		if math.Abs(sum-n.Height) > tolerance {
			t.Errorf("%s: sum of incoming widths = %v, height = %v", n.ID, sum, n.Height)
		}
	}
}

func TestOffsetsAccumulate(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c"},
		[]link{{"a", "b", 3}, {"a", "c", 7}},
	)
	Compute(g, DefaultConfig())

	a := node(t, g, "a")
	want := 0.0
	for i, l := range a.SourceLinks {
		if math.Abs(l.SY-want) > tolerance {
			t.Errorf("link %d: SY = %v, want %v (no gaps, no overlaps)", i, l.SY, want)
		}
		want += l.Width
	}
	if math.Abs(want-a.Height) > tolerance {
		t.Errorf("offsets end at %v, want height %v", want, a.Height)
	}
}

func overlapping(cols map[int][]*flow.Node) (string, string, bool) {
	for _, col := range cols {
		for i, n := range col {
			for _, m := range col[i+1:] {
				if n.Y < m.Y+m.Height-tolerance && m.Y < n.Y+n.Height-tolerance {
					return n.ID, m.ID, true
				}
			}
		}
	}
	return "", "", false
}

func TestNoOverlapAfterRelaxation(t *testing.T) {
	for _, iterations := range []int{0, 1, 8, 50} {
		g := build(t,
			[]string{"a", "b", "c", "d", "e", "f"},
			[]link{
				{"a", "c", 5}, {"b", "c", 2}, {"b", "d", 4},
				{"c", "e", 6}, {"c", "f", 1}, {"d", "f", 4},
			},
		)
		cfg := DefaultConfig()
		cfg.Iterations = iterations
		Compute(g, cfg)

		cols := make(map[int][]*flow.Node)
		for _, n := range g.Nodes() {
			cols[n.Depth] = append(cols[n.Depth], n)
		}
		if a, b, bad := overlapping(cols); bad {
			t.Errorf("iterations=%d: nodes %s and %s overlap vertically", iterations, a, b)
		}
	}
}

func TestIdempotence(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c", "d", "e"},
		[]link{
			{"a", "b", 10}, {"a", "c", 4}, {"b", "d", 7},
			{"c", "d", 2}, {"b", "e", 3}, {"c", "e", 2},
		},
	)
	cfg := DefaultConfig()
	Compute(g, cfg)

	type geom struct{ x, y, w, h float64 }
	first := make(map[string]geom)
	for _, n := range g.Nodes() {
		first[n.ID] = geom{n.X, n.Y, n.Width, n.Height}
	}
	type ribbon struct{ w, sy, ty float64 }
	firstLinks := make([]ribbon, 0, g.LinkCount())
	for _, l := range g.Links() {
		firstLinks = append(firstLinks, ribbon{l.Width, l.SY, l.TY})
	}

	Compute(g, cfg)

	for _, n := range g.Nodes() {
		got := geom{n.X, n.Y, n.Width, n.Height}
		if got != first[n.ID] {
			t.Errorf("%s: geometry changed on recompute: %+v != %+v", n.ID, got, first[n.ID])
		}
	}
	for i, l := range g.Links() {
		got := ribbon{l.Width, l.SY, l.TY}
		if got != firstLinks[i] {
			t.Errorf("link %d: ribbon changed on recompute: %+v != %+v", i, got, firstLinks[i])
		}
	}
}

func TestZeroConfigGetsDefaults(t *testing.T) {
	g := build(t, []string{"a", "b"}, []link{{"a", "b", 1}})
	Compute(g, Config{})

	a := node(t, g, "a")
	if a.Width != DefaultNodeWidth {
		t.Errorf("Width = %v, want default %v", a.Width, DefaultNodeWidth)
	}
}
