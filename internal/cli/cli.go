// Package cli implements the sankey command-line interface.
//
// This package provides commands for transforming tabular flow records into
// graphs, computing Sankey layouts, rendering diagrams, analyzing journey
// metrics, and serving the pipeline over HTTP. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - transform: Build a flow graph from CSV records
//   - layout: Compute positioned chart geometry from a graph or CSV
//   - render: Generate SVG, PNG, JSON, or DOT artifacts
//   - analyze: Compute per-node journey metrics
//   - serve: Run the HTTP API
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowviz/sankey/pkg/buildinfo"
	"github.com/flowviz/sankey/pkg/cache"
	"github.com/flowviz/sankey/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sankey"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the value of the global --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sankey",
		Short:        "Sankey turns weighted flow data into diagrams",
		Long:         `Sankey is a CLI tool for laying out weighted directed flow graphs as Sankey diagrams, rendering them to SVG, PNG, JSON, or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file")

	// Register all subcommands
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig loads the TOML config named by --config, or the zero config
// when the flag is unset and no default file exists.
func (c *CLI) loadConfig() (pipeline.FileConfig, error) {
	path := c.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	return pipeline.LoadConfig(path)
}

// defaultConfigPath returns ./sankey.toml, the conventional config location.
func defaultConfigPath() string {
	return "sankey.toml"
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The cache backend comes
// from the config file when one names a backend, otherwise a file cache under
// the XDG cache directory. noCache forces the null cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool, cfg pipeline.CacheConfig) (*pipeline.Runner, error) {
	store, err := newCache(ctx, noCache, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(ctx context.Context, noCache bool, cfg pipeline.CacheConfig) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend != "" {
		return cfg.Open(ctx)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sankey/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// isChartFile reports whether path looks like a serialized graph or chart
// rather than CSV input.
func isChartFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
