package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/flowviz/sankey/pkg/chart"
	"github.com/flowviz/sankey/pkg/flow"
	"github.com/flowviz/sankey/pkg/flow/layout"
)

func funnelChart(t *testing.T) chart.Chart {
	t.Helper()
	g := flow.New()
	for _, id := range []string{"visit", "signup", "purchase"} {
		if err := g.AddNode(flow.Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	_, _ = g.AddLink("visit", "signup", 100)
	_, _ = g.AddLink("signup", "purchase", 40)
	return chart.FromFlow(layout.Compute(g, layout.DefaultConfig()))
}

func TestRenderSVG(t *testing.T) {
	c := funnelChart(t)
	svg := string(RenderSVG(c, WithSize(800, 600)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with an svg element")
	}
	if !strings.Contains(svg, `viewBox="0 0 800.0 600.0"`) {
		t.Errorf("viewBox should reflect WithSize, got: %s", svg[:120])
	}
	if got := strings.Count(svg, `<rect class="node"`); got != 3 {
		t.Errorf("rect count = %d, want 3", got)
	}
	if got := strings.Count(svg, `<path class="link"`); got != 2 {
		t.Errorf("ribbon count = %d, want 2", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("output should close the svg element")
	}

	// Ribbons are drawn before rectangles so nodes sit on top
	if strings.Index(svg, `<path class="link"`) > strings.Index(svg, `<rect class="node"`) {
		t.Error("ribbons should be drawn before node rectangles")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	c := funnelChart(t)

	plain := string(RenderSVG(c))
	if strings.Contains(plain, "<text") {
		t.Error("labels should be off by default")
	}

	labeled := string(RenderSVG(c, WithLabels()))
	if got := strings.Count(labeled, "<text"); got != 3 {
		t.Errorf("label count = %d, want 3", got)
	}
	if !strings.Contains(labeled, ">visit</text>") {
		t.Error("labels should fall back to node id")
	}
}

func TestRenderSVGInteraction(t *testing.T) {
	c := funnelChart(t)

	plain := string(RenderSVG(c))
	if strings.Contains(plain, "<script") {
		t.Error("script should be off by default")
	}

	interactive := string(RenderSVG(c, WithInteraction()))
	if !strings.Contains(interactive, "<style>") || !strings.Contains(interactive, "<script") {
		t.Error("WithInteraction should embed style and script")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	c := chart.Chart{
		Nodes: []chart.Node{{ID: "a", Label: "<b>&co", Width: 24, Height: 10}},
	}
	svg := string(RenderSVG(c, WithLabels()))
	if strings.Contains(svg, "<b>&co") {
		t.Error("labels must be escaped")
	}
	if !strings.Contains(svg, "&lt;b&gt;&amp;co") {
		t.Error("escaped label missing from output")
	}
}

func TestRenderSVGLinkOpacity(t *testing.T) {
	c := funnelChart(t)
	svg := string(RenderSVG(c, WithLinkOpacity(0.8)))
	if !strings.Contains(svg, `fill-opacity="0.80"`) {
		t.Error("WithLinkOpacity should set ribbon opacity")
	}
}

func TestRenderSVGEmptyChart(t *testing.T) {
	svg := string(RenderSVG(chart.Chart{}))
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("empty chart should still produce a valid svg document")
	}
}

func TestRenderJSON(t *testing.T) {
	c := funnelChart(t)
	data, err := RenderJSON(c, WithJSONSize(800, 600))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Width  float64      `json:"width"`
		Height float64      `json:"height"`
		Nodes  []chart.Node `json:"nodes"`
		Links  []chart.Link `json:"links"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Width != 800 || out.Height != 600 {
		t.Errorf("size = %vx%v, want 800x600", out.Width, out.Height)
	}
	if len(out.Nodes) != 3 || len(out.Links) != 2 {
		t.Errorf("got %d nodes / %d links, want 3 / 2", len(out.Nodes), len(out.Links))
	}
}

func TestRenderJSONEmptyChart(t *testing.T) {
	data, err := RenderJSON(chart.Chart{})
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"nodes": []`) || !strings.Contains(s, `"links": []`) {
		t.Errorf("empty chart should emit empty arrays, got: %s", s)
	}
}
