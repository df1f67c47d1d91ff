package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/knitgrid/knitgrid/pkg/cache"
	"github.com/knitgrid/knitgrid/pkg/errors"
	"github.com/knitgrid/knitgrid/pkg/layout"
	"github.com/knitgrid/knitgrid/pkg/observability"
	"github.com/knitgrid/knitgrid/pkg/pattern"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
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

// Execute runs the complete parse → layout → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	set, setHash, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Set = set
	result.SetHash = setHash
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.PatternCount = len(set.Patterns())
	result.CacheInfo.ParseHit = parseHit

	pat, err := selectPattern(set, opts.Pattern)
	if err != nil {
		return nil, err
	}
	result.Stats.RowCount = pat.NumberOfRows()
	for _, row := range pat.Rows() {
		result.Stats.InstructionCount += len(row.Instructions())
	}

	opts.Logger.Info("parsed pattern set",
		"patterns", result.Stats.PatternCount,
		"rows", result.Stats.RowCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	grid, err := r.ComputeLayout(ctx, pat, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = grid
	result.Stats.LayoutTime = time.Since(layoutStart)

	b := grid.BoundingBox()
	opts.Logger.Info("computed layout",
		"pattern", pat.ID(),
		"width", b.Width(),
		"height", b.Height(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, grid, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered charts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo resolves the pattern set with caching and returns
// the source hash and cache hit info. Cached sets are stored in the
// file format itself, so a hit replays resolution from the normalized
// document.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*pattern.Set, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}

	data, source, err := loadDocument(opts)
	if err != nil {
		return nil, "", false, err
	}
	setHash := cache.Hash(data)
	cacheKey := r.Keyer.PatternKey(setHash)

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "pattern")
			if set, err := decodeSet(cached); err == nil {
				return set, setHash, true, nil
			}
		} else {
			observability.Cache().OnCacheMiss(ctx, "pattern")
		}
	}

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, source)
	set, err := decodeSet(data)
	observability.Pipeline().OnParseComplete(ctx, source, patternCount(set), time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	if normalized, err := encodeSet(set); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, normalized, cache.TTLPattern); err == nil {
			observability.Cache().OnCacheSet(ctx, "pattern", len(normalized))
		}
	}

	return set, setHash, false, nil
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*pattern.Set, error) {
	set, _, _, err := r.ParseWithCacheInfo(ctx, opts)
	return set, err
}

// ComputeLayout places one pattern on the grid. Layouts hold pointers
// into the pattern graph and are recomputed rather than cached; the
// expensive artifacts derived from them are cached instead.
func (r *Runner) ComputeLayout(ctx context.Context, pat *pattern.Pattern, opts Options) (*layout.GridLayout, error) {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, pat.ID(), pat.NumberOfRows())
	grid, err := layout.NewGridLayout(pat)
	observability.Pipeline().OnLayoutComplete(ctx, pat.ID(), time.Since(start), err)
	return grid, err
}

// RenderWithCacheInfo generates artifacts with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, grid *layout.GridLayout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	layoutHash, err := layoutHash(grid)
	if err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.artifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := renderArtifacts(grid, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.artifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, grid *layout.GridLayout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, grid, opts)
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

// selectPattern picks the pattern to lay out: the named one, or the
// set's first pattern when no name is given.
func selectPattern(set *pattern.Set, id string) (*pattern.Pattern, error) {
	if id != "" {
		pat, ok := set.Pattern(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownPattern, "pattern %q not in set", id)
		}
		return pat, nil
	}
	patterns := set.Patterns()
	if len(patterns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPatternSet, "pattern set is empty")
	}
	return patterns[0], nil
}

func patternCount(set *pattern.Set) int {
	if set == nil {
		return 0
	}
	return len(set.Patterns())
}
