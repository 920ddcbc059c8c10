package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowviz/sankey/internal/server"
	"github.com/flowviz/sankey/pkg/cache"
	"github.com/flowviz/sankey/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may run during shutdown.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	noCache  bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout and rendering API",
		Long: `Run the HTTP API exposing the chart pipeline.

Endpoints:
  GET  /healthz     liveness check
  POST /v1/layout   transform rows and compute chart geometry
  POST /v1/render   produce a single rendered artifact
  POST /v1/analyze  compute journey metrics

The cache backend follows the config file; --redis and --mongo override
it, and --no-cache serves without one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis cache URL (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB cache URI (e.g. mongodb://localhost:27017)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	switch {
	case opts.redisURL != "":
		cfg.Cache = pipeline.CacheConfig{Backend: "redis", URL: opts.redisURL}
	case opts.mongoURI != "":
		cfg.Cache = pipeline.CacheConfig{Backend: "mongo", URL: opts.mongoURI}
	}

	store, err := newCache(ctx, opts.noCache, cfg.Cache)
	if err != nil {
		return err
	}

	// Scope server cache keys away from local CLI runs sharing the backend.
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "api:"), c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Runner: runner,
		Logger: logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", opts.addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
