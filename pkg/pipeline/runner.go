package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowviz/sankey/pkg/cache"
	"github.com/flowviz/sankey/pkg/chart"
	"github.com/flowviz/sankey/pkg/flow"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete transform -> layout -> render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Transform
	transformStart := time.Now()
	g, transformHit, err := r.TransformWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	result.Graph = g
	result.Stats.TransformTime = time.Since(transformStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.LinkCount = g.LinkCount()
	result.CacheInfo.TransformHit = transformHit

	// Compute graph hash for cache keys and API responses
	if graphData, err := chart.Marshal(chart.FromFlow(g)); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("transformed input",
		"nodes", g.NodeCount(),
		"links", g.LinkCount(),
		"duration", result.Stats.TransformTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	c, layoutHit, err := r.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Chart = c
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(c.Nodes),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// TransformWithCacheInfo builds the flow graph with caching and returns
// cache hit info.
func (r *Runner) TransformWithCacheInfo(ctx context.Context, opts Options) (*flow.Graph, bool, error) {
	if err := opts.ValidateForTransform(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	g, input, err := Transform(opts)
	if err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.GraphKey(cache.Hash(input), opts.GraphKeyOpts())

	// Try cache first (unless refresh requested). The transform itself is
	// cheap; the cache exists so repeated runs skip re-reading large inputs
	// downstream and so the server can validate hashes without recompute.
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := chart.Unmarshal(data); err == nil {
				if restored, err := chart.ToFlow(cached); err == nil {
					return restored, true, nil // Cache hit
				}
			}
		}
	}

	// Cache the result
	if data, err := chart.Marshal(chart.FromFlow(g)); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
	}

	return g, false, nil // Cache miss
}

// Transform is a convenience wrapper that calls TransformWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Transform(ctx context.Context, opts Options) (*flow.Graph, error) {
	g, _, err := r.TransformWithCacheInfo(ctx, opts)
	return g, err
}

// LayoutWithCacheInfo computes chart geometry with caching and returns
// cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *flow.Graph, opts Options) (chart.Chart, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Chart{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	graphData, _ := chart.Marshal(chart.FromFlow(g))
	graphHash := cache.Hash(graphData)
	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := chart.Unmarshal(data); err == nil {
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}

	c := GenerateChart(g, opts)

	// Cache the result
	if data, err := chart.Marshal(c); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}

	return c, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *flow.Graph, opts Options) (chart.Chart, error) {
	c, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return c, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c chart.Chart, g *flow.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from chart data
	chartData, err := chart.Marshal(c)
	if err != nil {
		return nil, false, fmt.Errorf("serialize chart for cache key: %w", err)
	}
	chartHash := cache.Hash(chartData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := Render(c, g, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c chart.Chart, g *flow.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
