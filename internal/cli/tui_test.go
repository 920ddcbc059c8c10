package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flowviz/sankey/pkg/flow/analyze"
)

func testMetrics() []analyze.Metrics {
	return []analyze.Metrics{
		{ID: "visit", Label: "visit", Outflow: 100, ConversionRate: 1, IsSource: true},
		{ID: "signup", Label: "signup", Inflow: 100, Outflow: 40, DropOff: 60, DropOffRate: 0.6, ConversionRate: 0.4},
		{ID: "purchase", Label: "purchase", Inflow: 40, IsSink: true},
	}
}

func TestMetricsModelNavigation(t *testing.T) {
	m := NewMetricsModel("funnel.csv", testMetrics())

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyUp}

	model, _ := m.Update(down)
	m = model.(MetricsModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after down = %d, want 1", m.Cursor)
	}

	model, _ = m.Update(up)
	m = model.(MetricsModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor after up = %d, want 0", m.Cursor)
	}

	// Up at the top stays put
	model, _ = m.Update(up)
	m = model.(MetricsModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor should not go negative, got %d", m.Cursor)
	}
}

func TestMetricsModelJump(t *testing.T) {
	m := NewMetricsModel("funnel.csv", testMetrics())

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m = model.(MetricsModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor after G = %d, want 2", m.Cursor)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	m = model.(MetricsModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor after g = %d, want 0", m.Cursor)
	}
}

func TestMetricsModelQuit(t *testing.T) {
	m := NewMetricsModel("funnel.csv", testMetrics())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestMetricsModelView(t *testing.T) {
	m := NewMetricsModel("funnel.csv", testMetrics())

	view := m.View()
	for _, want := range []string{"funnel.csv", "visit", "signup", "purchase"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestRenderMetricsTable(t *testing.T) {
	out := renderMetricsTable(testMetrics(), -1, 0, 3)

	for _, want := range []string{"visit", "source", "sink", "40.0%", "60"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderMetricsTable() missing %q", want)
		}
	}
}
