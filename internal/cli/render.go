package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowviz/sankey/pkg/flow/layout"
	"github.com/flowviz/sankey/pkg/flow/transform"
	"github.com/flowviz/sankey/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format) or base path (multiple)
	kind        string   // chart kind: "sankey" or "nodelink"
	formats     []string // output formats: svg, png, json, dot
	labels      bool     // draw node labels
	interactive bool     // embed hover highlighting in SVG output
	opacity     float64  // ribbon fill opacity
	weights     bool     // label nodelink edges with flow values
	width       float64
	height      float64
	align       string
	source      string
	target      string
	value       string
	refresh     bool
	noCache     bool
}

// renderCommand creates the render command for generating chart artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{opacity: pipeline.DefaultLinkOpacity}

	cmd := &cobra.Command{
		Use:   "render <input.csv|graph.json>",
		Short: "Render a flow graph to SVG, PNG, JSON, or DOT",
		Long: `Render a flow graph as a Sankey diagram or node-link overview.

The input is either CSV flow records or a graph JSON file. Sankey charts
support svg, png, and json formats; nodelink charts additionally support
Graphviz dot.

Examples:
  sankey render funnel.csv
  sankey render funnel.csv -o funnel.svg --labels --interactive
  sankey render graph.json -f svg,png,json
  sankey render funnel.csv -t nodelink -f dot --weights`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.kind != "" {
				if err := pipeline.ValidateKind(opts.kind); err != nil {
					return err
				}
			}
			if opts.align != "" {
				if err := pipeline.ValidateAlign(opts.align); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.kind, "type", "t", "", "chart kind: sankey (default), nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw node labels")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "embed hover highlighting in SVG output")
	cmd.Flags().Float64Var(&opts.opacity, "opacity", opts.opacity, "ribbon fill opacity")
	cmd.Flags().BoolVar(&opts.weights, "weights", false, "label nodelink edges with flow values")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.align, "align", "", "horizontal alignment: left, right, center, justify")
	cmd.Flags().StringVar(&opts.source, "source", "", "CSV column for link sources")
	cmd.Flags().StringVar(&opts.target, "target", "", "CSV column for link targets")
	cmd.Flags().StringVar(&opts.value, "value", "", "CSV column for link values")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Mapping: transform.Mapping{
			SourceField: opts.source,
			TargetField: opts.target,
			ValueField:  opts.value,
		},
		Refresh: opts.refresh,
		Layout: layout.Config{
			Width:      opts.width,
			Height:     opts.height,
			Align:      opts.align,
			Iterations: -1,
		},
		Kind:        opts.kind,
		Formats:     opts.formats,
		Labels:      opts.labels,
		Interactive: opts.interactive,
		LinkOpacity: opts.opacity,
		Weights:     opts.weights,
	}
	cfg.Apply(&popts)

	runner, err := c.newRunner(ctx, opts.noCache, cfg.Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", input))
	spinner.Start()

	result, err := c.executeRender(ctx, runner, input, popts)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", input))

	logger.Debugf("Render finished: %d artifacts", len(result.Artifacts))

	base := basePath(opts.output, input)
	for _, format := range popts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}

		path := opts.output
		if path == "" || len(popts.Formats) > 1 {
			path = base + "." + format
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		out.Close()
		printFile(path)
	}

	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.RenderHit)
	return nil
}

// executeRender runs the pipeline for CSV input, or skips the transform
// stage when input is an already-serialized graph.
func (c *CLI) executeRender(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*pipeline.Result, error) {
	if !isChartFile(input) {
		opts.Input = input
		return runner.Execute(ctx, opts)
	}

	g, err := loadGraph(ctx, runner, input, opts)
	if err != nil {
		return nil, err
	}
	ch, layoutHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, ch, g, opts)
	if err != nil {
		return nil, err
	}
	return &pipeline.Result{
		Graph:     g,
		Chart:     ch,
		Artifacts: artifacts,
		Stats: pipeline.Stats{
			NodeCount: g.NodeCount(),
			LinkCount: g.LinkCount(),
		},
		CacheInfo: pipeline.CacheInfo{LayoutHit: layoutHit, RenderHit: renderHit},
	}, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// format extension (.svg, .png, etc.), it strips that extension. This is
// used when generating multiple files (e.g., funnel.svg, funnel.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
