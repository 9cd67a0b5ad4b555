package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lukaschristensson/TimeLinePlot/pkg/cache"
	"github.com/lukaschristensson/TimeLinePlot/pkg/observability"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

// Runner executes the pipeline with optional artifact caching.
//
// A Runner keeps no per-run state; several goroutines may share one with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses DefaultKeyer and a nil logger uses log.Default().
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

// Execute runs the complete normalize → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, records []entry.Record, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.Records = len(records)

	// Stage 1: Normalize
	start := time.Now()
	entries, err := r.Normalize(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	result.Entries = entries
	result.Stats.NormalizeTime = time.Since(start)

	r.Logger.Info("normalized entries",
		"entries", len(entries),
		"duration", result.Stats.NormalizeTime)

	// Stage 2: Layout
	start = time.Now()
	l, err := r.GenerateLayout(ctx, entries, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.Visible = len(l.Placements)
	result.Stats.Skipped = l.Skipped
	result.Stats.Tiers = l.Tiers()

	r.Logger.Info("computed layout",
		"visible", result.Stats.Visible,
		"skipped", result.Stats.Skipped,
		"tiers", result.Stats.Tiers,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, entries, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Normalize validates records. See entry.Normalize.
func (r *Runner) Normalize(ctx context.Context, records []entry.Record) ([]entry.Entry, error) {
	hooks := observability.Pipeline()
	hooks.OnNormalizeStart(ctx, len(records))
	start := time.Now()

	entries, err := entry.Normalize(records)
	hooks.OnNormalizeComplete(ctx, len(entries), time.Since(start), err)
	return entries, err
}

// GenerateLayout places entries on a surface of the configured size.
func (r *Runner) GenerateLayout(ctx context.Context, entries []entry.Entry, opts Options) (layout.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(entries))
	start := time.Now()

	l, err := GenerateLayout(entries, opts)
	hooks.OnLayoutComplete(ctx, len(l.Placements), l.Tiers(), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, err
	}
	if l.Skipped > 0 {
		r.Logger.Debug("entries outside the date range", "skipped", l.Skipped,
			"from", l.Range.FarLeft.Format(time.DateOnly), "to", l.Range.FarRight.Format(time.DateOnly))
	}
	return l, nil
}

// RenderWithCacheInfo renders every requested format, serving them from
// the cache when all of them are stored. The entries identify the
// dataset in cache keys; they must be the ones l was built from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, entries []entry.Entry, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	keys, err := r.artifactKeys(entries, opts)
	if err != nil {
		r.Logger.Warn("artifact caching disabled for this run", "error", err)
		keys = nil
	}

	if keys != nil {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keys[format])
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, format)
				break
			}
			observability.Cache().OnCacheHit(ctx, format)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		if keys == nil {
			break
		}
		if err := r.Cache.Set(ctx, keys[format], data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, entries []entry.Entry, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, entries, l, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) artifactKeys(entries []entry.Entry, opts Options) (map[string]string, error) {
	entriesHash, err := cache.HashJSON(entries)
	if err != nil {
		return nil, err
	}
	style, err := cache.HashJSON(opts.Config)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(entriesHash, cache.ArtifactKeyOpts{
			Format: format,
			Width:  opts.Width,
			Height: opts.Height,
			From:   formatBound(opts.From),
			To:     formatBound(opts.To),
			Style:  style,
			Title:  opts.Title,
		})
	}
	return keys, nil
}
