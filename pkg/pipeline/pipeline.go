// Package pipeline runs batches of unit conversions for fitsunits.
//
// This package wraps the translate → parse → convert operations of
// [github.com/matzehuels/fitsunits/pkg/units] with caching, observability
// hooks and logging, so the CLI commands and batch files share one code path.
//
// # Usage
//
// Create a Runner and execute a batch:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	jobs := []pipeline.Job{
//	    {Name: "velocity", Have: "km/s", Want: "m/s", Values: []float64{1, 2.5}},
//	}
//	results, err := runner.Execute(ctx, pipeline.Options{}, jobs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(results[0].Converted) // [1000 2500]
//
// Run individual stages:
//
//	spec, err := runner.Parse(ctx, opts, "10**-3 kg")
//	conv, err := runner.Convert(ctx, opts, "log(MHz)", "ln(Hz)")
//
// A job that fails is recorded in its [Result] with the failing status; the
// rest of the batch still runs.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fitsunits/pkg/cache"
	"github.com/matzehuels/fitsunits/pkg/units"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a Runner call.
type Options struct {
	// Control selects the unsafe translations ("S", "H", "D") to apply.
	Control units.Control `json:"control,omitempty"`

	// Translate runs alias translation before Parse. Convert always
	// translates, as units.ConvertWith does.
	Translate bool `json:"translate,omitempty"`

	// Refresh bypasses cached results; fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Validate checks the control bits and sets a discarding logger if none is set.
func (o *Options) Validate() error {
	if o.Control < 0 || o.Control > units.TranslateAll {
		return fmt.Errorf("invalid control %d (must be between 0 and %d)", o.Control, units.TranslateAll)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

func (o *Options) keyOpts(translate bool) cache.KeyOpts {
	return cache.KeyOpts{Control: int(o.Control), Translate: translate}
}

// =============================================================================
// Jobs and Results
// =============================================================================

// Job is one conversion in a batch: the values in units Have are converted
// to units Want.
type Job struct {
	Name   string    `json:"name" toml:"name" yaml:"name"`
	Have   string    `json:"have" toml:"have" yaml:"have"`
	Want   string    `json:"want" toml:"want" yaml:"want"`
	Values []float64 `json:"values,omitempty" toml:"values" yaml:"values"`
}

// Label returns the job name, or "have -> want" for unnamed jobs.
func (j Job) Label() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Have + " -> " + j.Want
}

// Validate rejects jobs with nothing to convert and non-finite input values.
func (j Job) Validate() error {
	if j.Have == "" && j.Want == "" {
		return fmt.Errorf("have and want are both empty")
	}
	for i, v := range j.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d is not finite", i)
		}
	}
	return nil
}

// StatusInvalidJob is the Result status of a job rejected by [Job.Validate]
// before any unit string is looked at. It lies outside the range of codes
// used by the units package.
const StatusInvalidJob units.Status = 100

// Result is the outcome of one Job.
type Result struct {
	Name    string       `json:"name"`
	Have    string       `json:"have"`
	Want    string       `json:"want"`
	Status  units.Status `json:"status"`
	Message string       `json:"message"`

	units.Conversion

	Values    []float64 `json:"values"`
	Converted []Number  `json:"converted"`
	Warnings  []string  `json:"warnings,omitempty"`

	// CacheHit reports whether the conversion came from the cache.
	CacheHit bool `json:"-"`
}

// OK reports whether the job succeeded. A translation warning still counts
// as success.
func (r Result) OK() bool {
	return r.Status != StatusInvalidJob && !r.Status.IsError()
}

// Number is a converted value. Non-finite values, such as the logarithm of a
// negative number, encode as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler; null decodes as NaN.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*n = Number(f)
	return nil
}

// Stats summarises a batch.
type Stats struct {
	Jobs      int
	Failed    int
	Warnings  int
	CacheHits int
	Duration  time.Duration
}

// Summarize computes batch statistics from results.
func Summarize(results []Result) Stats {
	var s Stats
	s.Jobs = len(results)
	for _, r := range results {
		if !r.OK() {
			s.Failed++
		}
		s.Warnings += len(r.Warnings)
		if r.CacheHit {
			s.CacheHits++
		}
	}
	return s
}
