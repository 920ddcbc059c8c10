package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/flowviz/sankey/pkg/cache"
	"github.com/flowviz/sankey/pkg/flow/layout"
	"github.com/flowviz/sankey/pkg/flow/transform"
)

// FileConfig is the on-disk TOML configuration for the pipeline.
// All sections are optional; zero values fall back to defaults.
//
//	[layout]
//	width = 1200
//	height = 800
//	align = "justify"
//
//	[mapping]
//	source = "from_stage"
//	target = "to_stage"
//	value = "users"
//
//	[render]
//	kind = "sankey"
//	formats = ["svg", "json"]
//	labels = true
//
//	[cache]
//	backend = "file"
//	dir = "~/.cache/sankey"
type FileConfig struct {
	Layout  layout.Config     `toml:"layout"`
	Mapping transform.Mapping `toml:"mapping"`
	Render  RenderConfig      `toml:"render"`
	Cache   CacheConfig       `toml:"cache"`
}

// RenderConfig is the [render] section of the config file.
type RenderConfig struct {
	Kind        string   `toml:"kind"`
	Formats     []string `toml:"formats"`
	Labels      bool     `toml:"labels"`
	Interactive bool     `toml:"interactive"`
	LinkOpacity float64  `toml:"link_opacity"`
	Weights     bool     `toml:"weights"`
}

// CacheConfig is the [cache] section of the config file.
type CacheConfig struct {
	Backend    string `toml:"backend"` // none, file, redis, mongo
	Dir        string `toml:"dir"`     // file backend
	URL        string `toml:"url"`     // redis or mongo connection URL
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LoadConfig reads a TOML config file. A missing file is not an error;
// the zero FileConfig is returned so defaults apply.
func LoadConfig(path string) (FileConfig, error) {
	var fc FileConfig

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// Apply merges the file config into opts. Options already set on opts
// win, so command-line flags override the config file.
func (fc FileConfig) Apply(opts *Options) {
	if opts.Layout.Width == 0 {
		opts.Layout.Width = fc.Layout.Width
	}
	if opts.Layout.Height == 0 {
		opts.Layout.Height = fc.Layout.Height
	}
	if opts.Layout.NodeWidth == 0 {
		opts.Layout.NodeWidth = fc.Layout.NodeWidth
	}
	if opts.Layout.NodePadding == 0 {
		opts.Layout.NodePadding = fc.Layout.NodePadding
	}
	if opts.Layout.Align == "" {
		opts.Layout.Align = fc.Layout.Align
	}
	// Negative means the caller never set iterations. An explicit 0
	// disables relaxation and must survive the merge.
	if opts.Layout.Iterations < 0 && fc.Layout.Iterations != 0 {
		opts.Layout.Iterations = fc.Layout.Iterations
	}

	if opts.Mapping.SourceField == "" {
		opts.Mapping.SourceField = fc.Mapping.SourceField
	}
	if opts.Mapping.TargetField == "" {
		opts.Mapping.TargetField = fc.Mapping.TargetField
	}
	if opts.Mapping.ValueField == "" {
		opts.Mapping.ValueField = fc.Mapping.ValueField
	}

	if opts.Kind == "" {
		opts.Kind = fc.Render.Kind
	}
	if len(opts.Formats) == 0 {
		opts.Formats = fc.Render.Formats
	}
	if !opts.Labels {
		opts.Labels = fc.Render.Labels
	}
	if !opts.Interactive {
		opts.Interactive = fc.Render.Interactive
	}
	if opts.LinkOpacity == 0 {
		opts.LinkOpacity = fc.Render.LinkOpacity
	}
	if !opts.Weights {
		opts.Weights = fc.Render.Weights
	}
}

// DefaultCacheDir returns the default directory for the file cache.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".sankey-cache"
	}
	return filepath.Join(base, "sankey")
}

// Open builds a cache backend from the config.
// An empty or "none" backend disables caching.
func (cc CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch cc.Backend {
	case "", "none":
		return cache.NewNullCache(), nil
	case "file":
		dir := cc.Dir
		if dir == "" {
			dir = DefaultCacheDir()
		}
		return cache.NewFileCache(dir)
	case "redis":
		if cc.URL == "" {
			return nil, fmt.Errorf("cache backend redis requires url")
		}
		return cache.NewRedisCache(ctx, cc.URL)
	case "mongo":
		if cc.URL == "" {
			return nil, fmt.Errorf("cache backend mongo requires url")
		}
		db := cc.Database
		if db == "" {
			db = "sankey"
		}
		coll := cc.Collection
		if coll == "" {
			coll = "cache"
		}
		return cache.NewMongoCache(ctx, cc.URL, db, coll)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cc.Backend)
	}
}
