package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/infographic/pkg/cache"
	"github.com/matzehuels/infographic/pkg/element"
	"github.com/matzehuels/infographic/pkg/errors"
	"github.com/matzehuels/infographic/pkg/observability"
	"github.com/matzehuels/infographic/pkg/options"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Execute runs the complete parse → compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	specHash, err := cache.HashJSON(opts.Spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash spec")
	}
	result := &Result{
		SpecHash:  specHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	// Artifacts are looked up before parsing: a full hit needs no parse.
	missing := r.lookup(ctx, specHash, opts, result)
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		r.Logger.Info("served from cache", "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Parse
	parseStart := time.Now()
	p, err := r.Parse(ctx, opts.Spec)
	if err != nil {
		return nil, err
	}
	result.Parsed = p
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.ItemCount = p.Data.Count()
	result.Stats.Depth = p.Data.Depth()

	r.Logger.Info("parsed spec",
		"structure", p.StructureType,
		"items", result.Stats.ItemCount,
		"depth", result.Stats.Depth)

	// Stage 2: Compose
	composeStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnComposeStart(ctx, p.StructureType, result.Stats.ItemCount)
	root := p.Compose()
	result.Stats.ComposeTime = time.Since(composeStart)
	hooks.OnComposeComplete(ctx, p.StructureType, result.Stats.ComposeTime, nil)

	r.Logger.Info("composed infographic",
		"structure", p.StructureType,
		"duration", result.Stats.ComposeTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, missing)
	rendered, err := r.Render(ctx, root, p, missing, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, missing, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	for format, data := range rendered {
		result.Artifacts[format] = data
		key := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}

	r.Logger.Info("rendered outputs",
		"formats", missing,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// lookup fills result with the cached artifacts and returns the formats
// still to render, in request order.
func (r *Runner) lookup(ctx context.Context, specHash string, opts Options, result *Result) []string {
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, format)
			missing = append(missing, format)
			continue
		}
		observability.Cache().OnCacheHit(ctx, format)
		result.Artifacts[format] = data
		result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
	}
	return missing
}

// Parse resolves a spec and reports it to the pipeline hooks.
func (r *Runner) Parse(ctx context.Context, spec options.Options) (*options.Parsed, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, spec.Template)

	start := time.Now()
	p, err := options.Parse(spec)
	d := time.Since(start)
	if err != nil {
		hooks.OnParseComplete(ctx, "", 0, d, err)
		return nil, err
	}
	hooks.OnParseComplete(ctx, p.StructureType, p.Data.Count(), d, nil)

	if _, ok := p.Measurer.(element.HeuristicMeasurer); ok && spec.Measurer == nil {
		r.Logger.Debug("font metrics unavailable, approximating text widths")
	}
	return p, nil
}

// Render serializes root into each format concurrently. PNG and PDF are
// converted from the SVG, so it is rendered first whenever one of them is
// requested.
func (r *Runner) Render(ctx context.Context, root element.Element, p *options.Parsed, formats []string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	var svgDoc []byte
	for _, f := range formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			svgDoc = renderSVG(root, p, opts)
			break
		}
	}

	var mu sync.Mutex
	out := make(map[string][]byte, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, format, svgDoc, root, p, opts)
			if err != nil {
				return wrapRender(format, err)
			}
			mu.Lock()
			out[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func wrapRender(format string, err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
}
