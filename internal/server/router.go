package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowviz/sankey/pkg/pipeline"
)

// newRouter builds the chi router with middleware and v1 routes.
func newRouter(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	h := &handlers{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", h.layout)
		r.Post("/render", h.render)
		r.Post("/analyze", h.analyze)
	})

	return r
}
