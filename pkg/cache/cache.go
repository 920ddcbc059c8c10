// Package cache provides pluggable caching for the layout pipeline.
//
// The pipeline caches at three levels:
//   - Graph: transformed flow graphs keyed by input hash and column mapping
//   - Layout: positioned charts keyed by graph hash and layout options
//   - Artifact: rendered output keyed by layout hash and render options
//
// Backends include a file cache for CLI usage, Redis and MongoDB for
// server deployments, and a null cache for tests or disabled caching.
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Graphs and layouts are cheap to recompute,
// rendered artifacts less so.
const (
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts captures the transform options that affect graph identity.
type GraphKeyOpts struct {
	SourceField string
	TargetField string
	ValueField  string
}

// LayoutKeyOpts captures the layout options that affect chart geometry.
type LayoutKeyOpts struct {
	Width         float64
	Height        float64
	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingLeft   float64
	NodeWidth     float64
	NodePadding   float64
	Align         string
	Iterations    int
}

// ArtifactKeyOpts captures the render options that affect output bytes.
type ArtifactKeyOpts struct {
	Format      string // svg, png, json, dot
	Kind        string // sankey, nodelink
	Labels      bool
	Interactive bool
	LinkOpacity float64
	Weights     bool
}

// Keyer generates cache keys for pipeline stages.
// Keys must be deterministic: the same inputs always produce the same key.
type Keyer interface {
	GraphKey(inputHash string, opts GraphKeyOpts) string
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
// Keys are namespaced by stage and hashed over the stage options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for transformed graph caching.
func (k *DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", inputHash, opts)
}

// LayoutKey generates a key for positioned chart caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
