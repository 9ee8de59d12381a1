package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chipmap/pkg/cache"
	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/memmap/layout"
	"github.com/matzehuels/chipmap/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
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

// Execute runs the complete build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.ManifestPath)
	chip, chipHash, chipHit, err := r.BuildWithCacheInfo(ctx, opts)
	observability.Pipeline().OnBuildComplete(ctx, chipName(chip), chipRegions(chip), time.Since(buildStart), err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Chip = chip
	result.ChipHash = chipHash
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.RegionCount = chip.RegionCount()
	result.CacheInfo.ChipHit = chipHit

	r.Logger.Info("built memory map",
		"chip", chip.Name(),
		"regions", chip.RegionCount(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Mode, chip.RegionCount())
	tree, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, chip, chipHash, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Mode, time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Tree = tree
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed geometry",
		"mode", tree.Mode,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, tree, chip, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
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

// BuildWithCacheInfo constructs the chip with caching and returns the
// manifest hash alongside cache hit info. Validation always reruns on a
// cache hit so a stale or tampered entry can never smuggle in an invalid
// map.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*memmap.Chip, string, bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	data, err := ManifestBytes(opts)
	if err != nil {
		return nil, "", false, err
	}
	manifestHash := cache.Hash(data)
	cacheKey := r.Keyer.ChipKey(manifestHash)

	if !opts.Refresh {
		if payload, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if chip, err := unmarshalChip(payload); err == nil {
				if err := memmap.Validate(chip); err == nil {
					observability.Cache().OnCacheHit(ctx, "chip")
					return chip, manifestHash, true, nil
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "chip")
	}

	chip, err := BuildFromBytes(data)
	if err != nil {
		return nil, manifestHash, false, err
	}

	if payload, err := marshalChip(chip); err == nil {
		if r.Cache.Set(ctx, cacheKey, payload, cache.TTLChip) == nil {
			observability.Cache().OnCacheSet(ctx, "chip", len(payload))
		}
	}

	return chip, manifestHash, false, nil
}

// Build is a convenience wrapper that discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*memmap.Chip, error) {
	chip, _, _, err := r.BuildWithCacheInfo(ctx, opts)
	return chip, err
}

// ComputeLayoutWithCacheInfo computes geometry with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, chip *memmap.Chip, chipHash string, opts Options) (*layout.Tree, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(chipHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := unmarshalTree(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Deserialization failure falls through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	tree, err := layout.Compute(chip, opts.LayoutConfig())
	if err != nil {
		return nil, false, err
	}

	if data, err := marshalTree(tree); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return tree, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, chip *memmap.Chip, chipHash string, opts Options) (*layout.Tree, error) {
	tree, _, err := r.ComputeLayoutWithCacheInfo(ctx, chip, chipHash, opts)
	return tree, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tree *layout.Tree, chip *memmap.Chip, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	treeData, err := marshalTree(tree)
	if err != nil {
		return nil, false, fmt.Errorf("serialize geometry for cache key: %w", err)
	}
	treeHash := cache.Hash(treeData)

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := RenderFromTree(ctx, tree, chip, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, tree *layout.Tree, chip *memmap.Chip, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tree, chip, opts)
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

func chipName(c *memmap.Chip) string {
	if c == nil {
		return ""
	}
	return c.Name()
}

func chipRegions(c *memmap.Chip) int {
	if c == nil {
		return 0
	}
	return c.RegionCount()
}
