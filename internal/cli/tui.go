package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/flowviz/sankey/pkg/flow/analyze"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MetricsModel - Interactive metrics browser
// =============================================================================

// MetricsModel is the bubbletea model for browsing journey metrics.
type MetricsModel struct {
	Input   string
	Metrics []analyze.Metrics
	Cursor  int
	Height  int
	Offset  int
}

// NewMetricsModel creates a new metrics browser model.
func NewMetricsModel(input string, metrics []analyze.Metrics) MetricsModel {
	return MetricsModel{
		Input:   input,
		Metrics: metrics,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m MetricsModel) Init() tea.Cmd {
	return nil
}

func (m MetricsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Metrics)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Metrics) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MetricsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Journey metrics"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(m.Input))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G jump  q quit"))
	b.WriteString("\n\n")

	b.WriteString(renderMetricsTable(m.Metrics, m.Cursor, m.Offset, m.Height))
	b.WriteString("\n")

	return b.String()
}

// renderMetricsTable renders a window of metrics as a lipgloss table.
// cursor < 0 disables row highlighting, used for non-interactive output.
func renderMetricsTable(metrics []analyze.Metrics, cursor, offset, height int) string {
	end := offset + height
	if end > len(metrics) {
		end = len(metrics)
	}

	rows := [][]string{}
	for i := offset; i < end; i++ {
		mt := metrics[i]

		marker := "  "
		if i == cursor {
			marker = "▸ "
		}

		role := ""
		switch {
		case mt.IsSource && mt.IsSink:
			role = "isolated"
		case mt.IsSource:
			role = "source"
		case mt.IsSink:
			role = "sink"
		}

		rows = append(rows, []string{
			marker,
			mt.Label,
			formatFlow(mt.Inflow),
			formatFlow(mt.Outflow),
			formatFlow(mt.DropOff),
			formatRate(mt.ConversionRate),
			role,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "In", "Out", "Drop", "Conv", "Role").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if offset+row == cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	return t.Render()
}
