// Package pipeline provides the core visualization pipeline for chipmap.
//
// This package implements the complete build → layout → render pipeline
// shared by the CLI commands. Centralizing it keeps behavior consistent
// across entry points and gives caching a single home.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: parse a TOML manifest and construct a validated chip
//  2. Layout: compute scaled 1-D geometry for the region tree
//  3. Render: generate output in various formats (SVG, PNG, JSON, DOT, text)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ManifestPath: "board.toml",
//	    Mode:         "linear",
//	    Formats:      []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chipmap/pkg/cache"
	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/memmap/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultAxisExtent is the default axis length in abstract units.
	DefaultAxisExtent = 1000.0

	// DefaultMinRegionExtent is the default floor for region extents.
	// Zero disables clamping.
	DefaultMinRegionExtent = 0.0

	// DefaultStripWidth is the default SVG strip width in pixels.
	DefaultStripWidth = 260.0

	// DefaultTextWidth is the default terminal line width.
	DefaultTextWidth = 80
)

// DefaultMode is the default scale mode.
const DefaultMode = string(layout.ScaleLinear)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
type Options struct {
	// Build options
	ManifestPath string `json:"manifest_path,omitempty"`
	Manifest     string `json:"manifest,omitempty"` // inline TOML, takes precedence over ManifestPath
	Refresh      bool   `json:"refresh,omitempty"`

	// Layout options
	Mode            string  `json:"mode,omitempty"`
	AxisExtent      float64 `json:"axis_extent,omitempty"`
	MinRegionExtent float64 `json:"min_region_extent,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	StripWidth float64  `json:"strip_width,omitempty"`
	TextWidth  int      `json:"text_width,omitempty"`
	TextANSI   bool     `json:"text_ansi,omitempty"` // color the text format for terminals

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chip is the parsed and validated memory map.
	Chip *memmap.Chip

	// ChipHash is the content hash of the manifest the chip came from.
	ChipHash string

	// Tree is the computed geometry.
	Tree *layout.Tree

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RegionCount int
	BuildTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ChipHit   bool // Whether the built chip came from cache
	LayoutHit bool // Whether the geometry tree came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, json, dot, text)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := o.ValidateForBuild(); err != nil {
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

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.AxisExtent == 0 {
		o.AxisExtent = DefaultAxisExtent
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForBuild validates options for chip construction.
func (o *Options) ValidateForBuild() error {
	if o.Manifest == "" && o.ManifestPath == "" {
		return fmt.Errorf("either Manifest or ManifestPath is required")
	}
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := layout.ScaleMode(o.Mode).Validate(); err != nil {
		return err
	}
	cfg := o.LayoutConfig()
	if cfg.AxisExtent <= 0 {
		return layout.ErrInvalidAxisExtent
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.StripWidth == 0 {
		o.StripWidth = DefaultStripWidth
	}
	if o.TextWidth == 0 {
		o.TextWidth = DefaultTextWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutConfig converts pipeline options to a layout configuration.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		Mode:            layout.ScaleMode(o.Mode),
		AxisExtent:      o.AxisExtent,
		MinRegionExtent: o.MinRegionExtent,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:            o.Mode,
		AxisExtent:      o.AxisExtent,
		MinRegionExtent: o.MinRegionExtent,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		StripWidth: o.StripWidth,
		TextWidth:  o.TextWidth,
		TextANSI:   o.TextANSI,
	}
}
