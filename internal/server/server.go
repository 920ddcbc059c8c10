// Package server exposes the chart pipeline over HTTP.
//
// The API is a thin JSON wrapper around [pipeline.Runner]:
//
//	POST /v1/layout   - transform + layout, returns the positioned chart
//	POST /v1/render   - full pipeline, returns the rendered artifact
//	POST /v1/analyze  - transform + per-node flow metrics
//	GET  /healthz     - liveness probe
//
// Request bodies are [pipeline.Options] JSON with inline rows. Errors are
// returned as JSON objects carrying a machine-readable code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowviz/sankey/pkg/pipeline"
)

// Server wraps an http.Server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// Config configures a Server.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Logger *log.Logger
}

// New creates a server. A nil Runner gets a cache-less default; a nil
// Logger falls back to the package default.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           newRouter(cfg.Runner, cfg.Logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
