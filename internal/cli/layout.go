package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowviz/sankey/pkg/chart"
	"github.com/flowviz/sankey/pkg/flow"
	"github.com/flowviz/sankey/pkg/flow/layout"
	"github.com/flowviz/sankey/pkg/flow/transform"
	"github.com/flowviz/sankey/pkg/pipeline"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output      string
	width       float64
	height      float64
	nodeWidth   float64
	nodePadding float64
	align       string
	iterations  int
	source      string
	target      string
	value       string
	refresh     bool
	noCache     bool
}

// layoutCommand creates the layout command. It accepts either a graph JSON
// file produced by transform or raw CSV, and writes the positioned chart.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{iterations: -1}

	cmd := &cobra.Command{
		Use:   "layout <graph.json|input.csv>",
		Short: "Compute Sankey chart geometry",
		Long: `Compute positioned chart geometry from a flow graph.

The input is either a graph JSON file (from "sankey transform") or a CSV
file, which is transformed first. Nodes are layered by depth, scaled by
flow value, and relaxed vertically to reduce link crossings.

Examples:
  sankey layout graph.json -o chart.json
  sankey layout funnel.csv --width 1200 --height 800 --align left`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.align != "" {
				if err := pipeline.ValidateAlign(opts.align); err != nil {
					return err
				}
			}
			return c.runLayout(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height in pixels")
	cmd.Flags().Float64Var(&opts.nodeWidth, "node-width", 0, "rendered node width in pixels")
	cmd.Flags().Float64Var(&opts.nodePadding, "node-padding", 0, "vertical gap between stacked nodes")
	cmd.Flags().StringVar(&opts.align, "align", "", "horizontal alignment: left, right, center, justify")
	cmd.Flags().IntVar(&opts.iterations, "iterations", -1, "relaxation iterations (0 skips relaxation)")
	cmd.Flags().StringVar(&opts.source, "source", "", "CSV column for link sources")
	cmd.Flags().StringVar(&opts.target, "target", "", "CSV column for link targets")
	cmd.Flags().StringVar(&opts.value, "value", "", "CSV column for link values")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts *layoutOpts) error {
	logger := loggerFromContext(ctx)

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
		Refresh: opts.refresh,
		Layout: layout.Config{
			Width:       opts.width,
			Height:      opts.height,
			NodeWidth:   opts.nodeWidth,
			NodePadding: opts.nodePadding,
			Align:       opts.align,
			Iterations:  opts.iterations,
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

	prog := newProgress(logger)
	ch, hit, err := runner.LayoutWithCacheInfo(ctx, g, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Laid out %d nodes across %d links", len(ch.Nodes), len(ch.Links)))

	if err := writeChart(ch, opts.output); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Computed layout for %s", input)
		printStats(len(ch.Nodes), len(ch.Links), hit)
		printFile(opts.output)
		printNewline()
		printNextStep("Render the chart", fmt.Sprintf("%s render %s", appName, input))
	}
	return nil
}

// loadGraph reads a flow graph from a JSON graph file, or transforms CSV
// input through the runner.
func loadGraph(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*flow.Graph, error) {
	if isChartFile(input) {
		return chart.ReadGraphFile(input)
	}
	return runner.Transform(ctx, opts)
}
