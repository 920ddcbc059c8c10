package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowviz/sankey/pkg/chart"
	"github.com/flowviz/sankey/pkg/flow/transform"
	"github.com/flowviz/sankey/pkg/pipeline"
)

// transformOpts holds the command-line flags for the transform command.
type transformOpts struct {
	output  string // output file path (stdout if empty)
	source  string // CSV column holding the link source
	target  string // CSV column holding the link target
	value   string // CSV column holding the link value
	refresh bool   // bypass the graph cache
	noCache bool   // disable caching entirely
}

// transformCommand creates the transform command. It reads CSV flow records
// and writes the aggregated graph as JSON.
func (c *CLI) transformCommand() *cobra.Command {
	var opts transformOpts

	cmd := &cobra.Command{
		Use:   "transform <input.csv>",
		Short: "Build a flow graph from CSV records",
		Long: `Build a flow graph from CSV flow records.

Each row contributes one weighted link; rows sharing an endpoint pair are
aggregated into a single link. Column names default to "source", "target",
and "value" and can be remapped with flags.

Examples:
  sankey transform funnel.csv
  sankey transform funnel.csv -o graph.json
  sankey transform events.csv --source from --target to --value count`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTransform(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.source, "source", "", "CSV column for link sources")
	cmd.Flags().StringVar(&opts.target, "target", "", "CSV column for link targets")
	cmd.Flags().StringVar(&opts.value, "value", "", "CSV column for link values")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runTransform(ctx context.Context, input string, opts *transformOpts) error {
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
	}
	cfg.Apply(&popts)

	runner, err := c.newRunner(ctx, opts.noCache, cfg.Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	g, hit, err := runner.TransformWithCacheInfo(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Transformed %d nodes and %d links", g.NodeCount(), g.LinkCount()))

	if err := writeChart(chart.FromFlow(g), opts.output); err != nil {
		return err
	}

	// When writing to stdout the JSON is the output; keep the epilogue off it.
	if opts.output != "" {
		printSuccess("Transformed %s", input)
		printStats(g.NodeCount(), g.LinkCount(), hit)
		printFile(opts.output)
		printNewline()
		printNextStep("Compute a layout", fmt.Sprintf("%s layout %s", appName, opts.output))
	}
	return nil
}

// writeChart serializes c as JSON to the specified path (or stdout if empty).
func writeChart(c chart.Chart, path string) error {
	if path != "" {
		return chart.WriteFile(c, path)
	}
	out, err := openOutput("")
	if err != nil {
		return err
	}
	defer out.Close()

	data, err := chart.Marshal(c)
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}
