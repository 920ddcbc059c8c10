package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/flowviz/sankey/pkg/cache"
	"github.com/flowviz/sankey/pkg/chart"
	"github.com/flowviz/sankey/pkg/errors"
	"github.com/flowviz/sankey/pkg/flow/analyze"
	"github.com/flowviz/sankey/pkg/flow/transform"
	"github.com/flowviz/sankey/pkg/pipeline"
)

type handlers struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func hashOf(data []byte) string {
	return cache.Hash(data)
}

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type layoutResponse struct {
	GraphHash string      `json:"graph_hash"`
	Chart     chart.Chart `json:"chart"`
	Nodes     int         `json:"nodes"`
	Links     int         `json:"links"`
}

type analyzeResponse struct {
	GraphHash string            `json:"graph_hash"`
	Metrics   []analyze.Metrics `json:"metrics"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// layout runs transform + layout and returns the positioned chart.
func (h *handlers) layout(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}

	g, err := h.runner.Transform(r.Context(), opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.runner.Layout(r.Context(), g, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data, _ := chart.Marshal(chart.FromFlow(g))
	h.writeJSON(w, http.StatusOK, layoutResponse{
		GraphHash: hashOf(data),
		Chart:     c,
		Nodes:     g.NodeCount(),
		Links:     g.LinkCount(),
	})
}

// render runs the full pipeline and returns the artifact bytes. Exactly
// one output format must be requested; the bytes are returned with the
// format's content type rather than wrapped in JSON.
func (h *handlers) render(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	if len(opts.Formats) != 1 {
		h.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "render accepts exactly one format"))
		return
	}

	result, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	ct := contentTypes[format]
	if ct == "" {
		ct = "application/octet-stream"
	}

	w.Header().Set("Content-Type", ct)
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// analyze runs the transform stage and returns per-node flow metrics.
func (h *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}

	g, err := h.runner.Transform(r.Context(), opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data, _ := chart.Marshal(chart.FromFlow(g))
	h.writeJSON(w, http.StatusOK, analyzeResponse{
		GraphHash: hashOf(data),
		Metrics:   analyze.Analyze(g),
	})
}

func (h *handlers) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		h.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return opts, false
	}
	if opts.Rows == nil {
		h.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "rows is required"))
		return opts, false
	}
	if err := validateRows(opts); err != nil {
		h.writeError(w, r, err)
		return opts, false
	}
	// The server never reads files on behalf of clients.
	opts.Input = ""
	opts.Logger = h.logger
	return opts, true
}

// validateRows rejects endpoint IDs that the transform would otherwise
// accept untouched (oversized or control-character identifiers).
func validateRows(opts pipeline.Options) error {
	srcField := opts.Mapping.SourceField
	if srcField == "" {
		srcField = transform.DefaultSourceField
	}
	tgtField := opts.Mapping.TargetField
	if tgtField == "" {
		tgtField = transform.DefaultTargetField
	}
	for _, row := range opts.Rows {
		for _, id := range []string{row[srcField], row[tgtField]} {
			if id == "" {
				continue
			}
			if err := errors.ValidateNodeID(id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case code == "":
		code = errors.ErrCodeInternal
	case code == errors.ErrCodeNotFound || code == errors.ErrCodeFileNotFound || code == errors.ErrCodeNodeNotFound:
		status = http.StatusNotFound
	case len(code) > 7 && code[:7] == "INVALID":
		status = http.StatusBadRequest
	}

	h.logger.Error("request failed",
		"path", r.URL.Path,
		"code", code,
		"err", err,
		"request_id", RequestID(r.Context()))

	h.writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}
