package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flowviz/sankey/pkg/flow/analyze"
	"github.com/flowviz/sankey/pkg/flow/transform"
	"github.com/flowviz/sankey/pkg/pipeline"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	asJSON      bool // emit metrics as JSON instead of a table
	interactive bool // browse metrics in a TUI
	source      string
	target      string
	value       string
	noCache     bool
}

// analyzeCommand creates the analyze command for journey metrics.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <input.csv|graph.json>",
		Short: "Compute per-node journey metrics",
		Long: `Compute per-node journey metrics from a flow graph.

For every node the analyzer reports inflow, outflow, drop-off, and
conversion rate. Results print as a table by default; use --json for
machine-readable output or --interactive to browse large graphs.

Examples:
  sankey analyze funnel.csv
  sankey analyze graph.json --json
  sankey analyze funnel.csv -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit metrics as JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse metrics interactively")
	cmd.Flags().StringVar(&opts.source, "source", "", "CSV column for link sources")
	cmd.Flags().StringVar(&opts.target, "target", "", "CSV column for link targets")
	cmd.Flags().StringVar(&opts.value, "value", "", "CSV column for link values")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, opts *analyzeOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Input: input,
		Mapping: transform.Mapping{
			SourceField: opts.source,
			TargetField: opts.target,
			ValueField:  opts.value,
		},
	}
	cfg.Apply(&popts)

	runner, err := c.newRunner(ctx, opts.noCache, cfg.Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := loadGraph(ctx, runner, input, popts)
	if err != nil {
		return err
	}

	metrics := analyze.Analyze(g)
	if len(metrics) == 0 {
		printWarning("No nodes to analyze")
		return nil
	}

	switch {
	case opts.asJSON:
		data, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	case opts.interactive:
		model := NewMetricsModel(input, metrics)
		_, err := tea.NewProgram(model).Run()
		return err
	default:
		printMetricsTable(input, metrics)
		return nil
	}
}

// printMetricsTable prints the non-interactive metrics summary.
func printMetricsTable(input string, metrics []analyze.Metrics) {
	fmt.Println(StyleTitle.Render("Journey metrics") + " " + StyleDim.Render(input))
	printNewline()
	fmt.Println(renderMetricsTable(metrics, -1, 0, len(metrics)))
	printNewline()

	var totalIn, totalDrop float64
	for _, m := range metrics {
		if m.IsSource {
			totalIn += m.Outflow
		}
		totalDrop += m.DropOff
	}
	printKeyValue("entering", formatFlow(totalIn))
	printKeyValue("dropped", formatFlow(totalDrop))
}

// formatFlow formats a flow value without trailing zeros.
func formatFlow(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatRate formats a ratio as a percentage with one decimal.
func formatRate(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
