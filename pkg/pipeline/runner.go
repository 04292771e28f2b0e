package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL replaces the per-kind cache lifetimes when positive.
	TTL time.Duration
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

// Execute runs the complete parse → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	buildStart := time.Now()
	chart, err := r.Build(ctx, data)
	if err != nil {
		return nil, err
	}
	result := &Result{Chart: chart}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = chart.Partition.Len()
	result.Stats.Height = chart.Partition.Height()

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, chart, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Build decodes tree JSON and partitions it.
func (r *Runner) Build(ctx context.Context, data []byte) (*Chart, error) {
	hooks := observability.Chart()
	hooks.OnBuildStart(ctx, len(data))
	start := time.Now()

	tree, hash, err := Parse(data)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	chart, err := r.BuildTree(ctx, tree, hash)
	hooks.OnBuildComplete(ctx, chartLen(chart), time.Since(start), err)
	return chart, err
}

// BuildTree partitions an already decoded tree. An empty hash is computed.
func (r *Runner) BuildTree(ctx context.Context, tree *hierarchy.TreeNode, hash string) (*Chart, error) {
	p, err := hierarchy.Build(tree)
	if err != nil {
		return nil, err
	}
	if hash == "" {
		hash = TreeHash(tree)
	}
	r.Logger.Info("built partition",
		"nodes", p.Len(),
		"height", p.Height(),
		"total", p.TotalWeight())
	return &Chart{Tree: tree, Partition: p, Hash: hash}, nil
}

func chartLen(c *Chart) int {
	if c == nil {
		return 0
	}
	return c.Partition.Len()
}

// LayoutWithCacheInfo returns the JSON layout document with caching and
// reports whether it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, c *Chart, opts Options) ([]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(c.Hash, opts.LayoutKeyOpts())
	if data, ok := r.lookup(ctx, "layout", key, opts.Refresh); ok {
		return data, true, nil
	}

	data, err := MarshalLayout(c, opts)
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, "layout", key, data, cache.TTLLayout)
	return data, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit is true only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *Chart, opts Options) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(c.Hash, opts.ArtifactKeyOpts(format))
			data, ok := r.lookup(ctx, "artifact", key, false)
			if !ok {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Chart()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, c, opts)
	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(c.Hash, opts.ArtifactKeyOpts(format))
		r.store(ctx, "artifact", key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c *Chart, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

// FramesWithCacheInfo returns the JSON frame sequence for opts.Clicks with
// caching.
func (r *Runner) FramesWithCacheInfo(ctx context.Context, c *Chart, opts Options) ([]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.FramesKey(c.Hash, opts.FramesKeyOpts())
	if data, ok := r.lookup(ctx, "frames", key, opts.Refresh); ok {
		return data, true, nil
	}

	seq, err := Frames(c, opts)
	if err != nil {
		return nil, false, err
	}
	data, err := MarshalFrames(seq)
	if err != nil {
		return nil, false, fmt.Errorf("encode frames: %w", err)
	}
	r.Logger.Debug("played click path", "clicks", len(opts.Clicks), "frames", len(seq.Frames))
	r.store(ctx, "frames", key, data, cache.TTLFrames)
	return data, false, nil
}

func (r *Runner) lookup(ctx context.Context, kind, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", kind, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return data, true
}

func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
