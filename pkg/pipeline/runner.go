package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fitsunits/pkg/cache"
	"github.com/matzehuels/fitsunits/pkg/errors"
	"github.com/matzehuels/fitsunits/pkg/observability"
	"github.com/matzehuels/fitsunits/pkg/units"
)

// Cache key types reported to cache hooks.
const (
	keyTypeSpec       = "spec"
	keyTypeConversion = "conv"
)

// Runner encapsulates translate → parse → convert execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
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

// Execute converts every job in order and returns one Result per job.
//
// A failing job is recorded in its Result and does not stop the batch.
// Execute returns early with the results so far if ctx is cancelled.
func (r *Runner) Execute(ctx context.Context, opts Options, jobs []Job) ([]Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	observability.Pipeline().OnBatchStart(ctx, len(jobs))

	results := make([]Result, 0, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := r.run(ctx, opts, job)
		if !res.OK() {
			r.Logger.Warn("conversion failed",
				"job", i+1,
				"name", job.Label(),
				"status", int(res.Status),
				"error", res.Message)
		}
		results = append(results, res)
	}

	stats := Summarize(results)
	stats.Duration = time.Since(start)
	observability.Pipeline().OnBatchComplete(ctx, stats.Jobs, stats.Failed, stats.Duration)

	r.Logger.Info("converted batch",
		"jobs", stats.Jobs,
		"failed", stats.Failed,
		"warnings", stats.Warnings,
		"cache_hits", stats.CacheHits,
		"duration", stats.Duration)

	return results, nil
}

// run executes a single job.
func (r *Runner) run(ctx context.Context, opts Options, job Job) Result {
	res := Result{
		Name:       job.Label(),
		Have:       job.Have,
		Want:       job.Want,
		Values:     job.Values,
		Conversion: units.Conversion{Power: 1},
	}
	if res.Values == nil {
		res.Values = []float64{}
	}
	res.Converted = []Number{}

	if err := job.Validate(); err != nil {
		res.Status = StatusInvalidJob
		res.Message = err.Error()
		return res
	}

	// Collect translation warnings; the conversion itself translates again.
	for _, u := range []string{job.Have, job.Want} {
		if _, status, err := r.Translate(ctx, opts, u); status == units.StatusUnsafeTranslation {
			res.Warnings = append(res.Warnings, errors.UserMessage(err))
		}
	}

	conv, hit, err := r.ConvertWithCacheInfo(ctx, opts, job.Have, job.Want)
	res.CacheHit = hit
	if err != nil {
		res.Status = units.StatusOf(err)
		res.Message = errors.UserMessage(err)
		return res
	}

	res.Status = units.StatusSuccess
	res.Message = units.Message(units.StatusSuccess)
	res.Conversion = conv
	for _, v := range job.Values {
		res.Converted = append(res.Converted, Number(conv.Apply(v)))
	}
	return res
}

// Translate runs alias translation, reporting the event to hooks.
func (r *Runner) Translate(ctx context.Context, opts Options, unitstr string) (string, units.Status, error) {
	start := time.Now()
	out, status, err := units.Translate(opts.Control, unitstr)
	observability.Pipeline().OnTranslate(ctx, unitstr, int(status), time.Since(start))
	r.Logger.Debug("translated units", "in", unitstr, "out", out, "status", int(status))
	return out, status, err
}

// ParseWithCacheInfo parses a unit specification with caching and returns
// cache hit info. With opts.Translate, aliases are translated first and an
// unsafe-translation warning is logged.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options, unitstr string) (units.Spec, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return units.Spec{}, false, err
	}

	key := r.Keyer.SpecKey(unitstr, opts.keyOpts(opts.Translate))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var spec units.Spec
		if r.lookup(ctx, key, keyTypeSpec, &spec) {
			return spec, true, nil
		}
	}

	s := unitstr
	if opts.Translate {
		out, status, err := r.Translate(ctx, opts, unitstr)
		switch status {
		case units.StatusParserError:
			return units.Spec{}, false, errors.Wrap(int(status), err, "Cannot translate '%s'", unitstr)
		case units.StatusUnsafeTranslation:
			opts.Logger.Warn(errors.UserMessage(err))
		}
		s = out
	}

	start := time.Now()
	spec, err := units.Parse(s)
	observability.Pipeline().OnParse(ctx, unitstr, time.Since(start), err)
	if err != nil {
		return units.Spec{}, false, err
	}

	r.store(ctx, key, keyTypeSpec, spec, cache.TTLSpec)
	return spec, false, nil
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options, unitstr string) (units.Spec, error) {
	spec, _, err := r.ParseWithCacheInfo(ctx, opts, unitstr)
	return spec, err
}

// ConvertWithCacheInfo computes a conversion with caching and returns cache
// hit info. Failed conversions are not cached.
func (r *Runner) ConvertWithCacheInfo(ctx context.Context, opts Options, have, want string) (units.Conversion, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return units.Conversion{Power: 1}, false, err
	}

	key := r.Keyer.ConversionKey(have, want, opts.keyOpts(true))

	if !opts.Refresh {
		var conv units.Conversion
		if r.lookup(ctx, key, keyTypeConversion, &conv) {
			return conv, true, nil
		}
	}

	start := time.Now()
	conv, err := units.ConvertWith(opts.Control, have, want)
	observability.Pipeline().OnConvert(ctx, have, want, time.Since(start), err)
	if err != nil {
		return conv, false, err
	}
	r.Logger.Debug("computed conversion",
		"have", have,
		"want", want,
		"scale", conv.Scale,
		"offset", conv.Offset,
		"power", conv.Power)

	r.store(ctx, key, keyTypeConversion, conv, cache.TTLConversion)
	return conv, false, nil
}

// Convert is a convenience wrapper that calls ConvertWithCacheInfo and discards the cache hit info.
func (r *Runner) Convert(ctx context.Context, opts Options, have, want string) (units.Conversion, error) {
	conv, _, err := r.ConvertWithCacheInfo(ctx, opts, have, want)
	return conv, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup decodes a cached JSON value into v and reports whether it did.
// Undecodable entries count as a miss.
func (r *Runner) lookup(ctx context.Context, key, keyType string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "error", err)
	}
	if err == nil && hit && json.Unmarshal(data, v) == nil {
		observability.Cache().OnCacheHit(ctx, keyType)
		return true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return false
}

// store JSON-encodes v into the cache. Write failures are logged and ignored.
func (r *Runner) store(ctx context.Context, key, keyType string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
