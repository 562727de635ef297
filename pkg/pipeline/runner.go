package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lexcloud/lexcloud/pkg/cache"
	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/corpus"
	"github.com/lexcloud/lexcloud/pkg/freq"
	"github.com/lexcloud/lexcloud/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete count → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// The corpus is loaded and tokenized unconditionally; only the
	// derived stages are cached. Tokenization is cheap next to layout
	// and render, and the cooc path needs the raw streams anyway.
	c, err := LoadCorpus(opts)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	result.CorpusHash = c.Hash()
	result.Stats.DocCount = len(c.Docs)

	streams, err := Tokenize(c, opts)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	// Stage 1: Count
	countStart := time.Now()
	observability.Pipeline().OnCountStart(ctx, len(c.Docs))
	table, countsHit, err := r.CountWithCacheInfo(ctx, c, streams, opts)
	observability.Pipeline().OnCountComplete(ctx, len(c.Docs), tableLen(table), time.Since(countStart), err)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	result.Table = table
	result.Stats.CountTime = time.Since(countStart)
	result.Stats.TokenCount = table.Len()
	result.CacheInfo.CountsHit = countsHit

	r.Logger.Info("counted tokens",
		"docs", len(c.Docs),
		"tokens", table.Len(),
		"duration", result.Stats.CountTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.VizType, table.Len())
	layout, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, table, streams, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.VizType, len(layout.Words), len(layout.Dropped), time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PlacedCount = len(layout.Words)
	result.Stats.DropCount = len(layout.Dropped)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"placed", len(layout.Words),
		"dropped", len(layout.Dropped),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
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

// CountWithCacheInfo builds the weight table with caching and returns
// cache hit info.
func (r *Runner) CountWithCacheInfo(ctx context.Context, c *corpus.Corpus, streams [][]string, opts Options) (*freq.Table, bool, error) {
	if err := opts.ValidateForCount(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.CountsKey(c.Hash(), opts.CountsKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached freq.Table
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "counts")
			return &cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "counts")

	table, err := Count(c, streams, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(table); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLCounts)
		observability.Cache().OnCacheSet(ctx, "counts", len(data))
	}

	return table, false, nil // Cache miss
}

// GenerateLayoutWithCacheInfo generates a layout with caching and
// returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, table *freq.Table, streams [][]string, opts Options) (cloud.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return cloud.Layout{}, false, err
	}
	r.applyLogger(&opts)

	tableData, _ := json.Marshal(table)
	tableHash := cache.Hash(tableData)
	cacheKey := r.Keyer.LayoutKey(tableHash, opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := cloud.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil // Cache hit
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	layout, err := GenerateLayout(table, streams, opts)
	if err != nil {
		return cloud.Layout{}, false, err
	}

	if data, err := cloud.MarshalLayout(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil // Cache miss
}

// RenderWithCacheInfo generates artifacts with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout cloud.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := cloud.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, layout, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// tableLen reports the table size without tripping over a nil table
// from a failed count stage.
func tableLen(t *freq.Table) int {
	if t == nil {
		return 0
	}
	return t.Len()
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
