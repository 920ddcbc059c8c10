// Package pipeline provides the core chart-building pipeline.
//
// This package implements the complete transform -> layout -> render
// pipeline that can be used by CLI and server components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Transform: Convert tabular flow records into a weighted graph
//  2. Layout: Compute node and ribbon geometry for the graph
//  3. Render: Generate output in various formats (SVG, PNG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "funnel.csv",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Transform only
//	g, err := runner.Transform(ctx, opts)
//
//	// Layout with existing graph
//	c, err := runner.Layout(ctx, g, opts)
//
//	// Render with existing chart
//	artifacts, err := runner.Render(ctx, c, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowviz/sankey/pkg/cache"
	"github.com/flowviz/sankey/pkg/chart"
	"github.com/flowviz/sankey/pkg/errors"
	"github.com/flowviz/sankey/pkg/flow"
	"github.com/flowviz/sankey/pkg/flow/layout"
	"github.com/flowviz/sankey/pkg/flow/transform"
)

// Kind constants for diagram kinds.
const (
	KindSankey   = "sankey"
	KindNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidKinds is the set of supported diagram kinds.
var ValidKinds = map[string]bool{
	KindSankey:   true,
	KindNodelink: true,
}

// DefaultLinkOpacity is the default ribbon fill opacity.
const DefaultLinkOpacity = 0.5

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Transform options
	Input   string            `json:"input,omitempty"` // CSV file path
	Rows    []transform.Row   `json:"rows,omitempty"`  // Inline rows, used instead of Input when set
	Mapping transform.Mapping `json:"mapping,omitempty"`
	Refresh bool              `json:"refresh,omitempty"`

	// Layout options
	Layout layout.Config `json:"layout,omitempty"`

	// Render options
	Kind        string   `json:"kind,omitempty"`
	Formats     []string `json:"formats,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	LinkOpacity float64  `json:"link_opacity,omitempty"`
	Weights     bool     `json:"weights,omitempty"` // Label nodelink edges with flow values

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the transformed flow graph.
	Graph *flow.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Chart is the positioned chart.
	Chart chart.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	LinkCount     int
	TransformTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TransformHit bool // Whether the transformed graph came from cache
	LayoutHit    bool // Whether the positioned chart came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that a diagram kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return fmt.Errorf("invalid kind: %q (must be one of: sankey, nodelink)", kind)
	}
	return nil
}

// ValidateAlign checks that an alignment mode is valid.
func ValidateAlign(align string) error {
	if align != "" && !layout.ValidAligns[align] {
		return fmt.Errorf("invalid align: %q (must be one of: left, right, center, justify)", align)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForTransform(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForTransform checks required fields for the transform stage.
func (o *Options) ValidateForTransform() error {
	if o.Input == "" && o.Rows == nil {
		return fmt.Errorf("input or rows is required")
	}
	for _, field := range []string{o.Mapping.SourceField, o.Mapping.TargetField, o.Mapping.ValueField} {
		if field == "" {
			continue
		}
		if err := errors.ValidateFieldName(field); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults fills zero-valued layout options with defaults.
func (o *Options) SetLayoutDefaults() {
	defaults := layout.DefaultConfig()
	if o.Layout.Width == 0 {
		o.Layout.Width = defaults.Width
	}
	if o.Layout.Height == 0 {
		o.Layout.Height = defaults.Height
	}
	if o.Layout.Align == "" {
		o.Layout.Align = defaults.Align
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateAlign(o.Layout.Align)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Kind == "" {
		o.Kind = KindSankey
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.LinkOpacity == 0 {
		o.LinkOpacity = DefaultLinkOpacity
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsSankey returns true if this is a Sankey diagram.
func (o *Options) IsSankey() bool {
	return o.Kind == "" || o.Kind == KindSankey
}

// IsNodelink returns true if this is a nodelink diagram.
func (o *Options) IsNodelink() bool {
	return o.Kind == KindNodelink
}

// GraphKeyOpts returns cache key options for the transform stage.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		SourceField: o.Mapping.SourceField,
		TargetField: o.Mapping.TargetField,
		ValueField:  o.Mapping.ValueField,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Layout.Width,
		Height:        o.Layout.Height,
		PaddingTop:    o.Layout.Padding.Top,
		PaddingRight:  o.Layout.Padding.Right,
		PaddingBottom: o.Layout.Padding.Bottom,
		PaddingLeft:   o.Layout.Padding.Left,
		NodeWidth:     o.Layout.NodeWidth,
		NodePadding:   o.Layout.NodePadding,
		Align:         o.Layout.Align,
		Iterations:    o.Layout.Iterations,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Kind:        o.Kind,
		Labels:      o.Labels,
		Interactive: o.Interactive,
		LinkOpacity: o.LinkOpacity,
		Weights:     o.Weights,
	}
}
