package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/fitsunits/pkg/cache"
	"github.com/matzehuels/fitsunits/pkg/errors"
	"github.com/matzehuels/fitsunits/pkg/observability"
	"github.com/matzehuels/fitsunits/pkg/units"
)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func floats(ns []Number) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = float64(n)
	}
	return out
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		control units.Control
		wantErr bool
	}{
		{0, false},
		{units.TranslateS, false},
		{units.TranslateAll, false},
		{8, true},
		{-1, true},
	}
	for _, tt := range tests {
		opts := Options{Control: tt.control}
		err := opts.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(control=%d) error = %v, wantErr %v", tt.control, err, tt.wantErr)
		}
		if err == nil && opts.Logger == nil {
			t.Error("Validate should set a logger")
		}
	}
}

func TestJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{"Valid", Job{Have: "km", Want: "m", Values: []float64{1}}, false},
		{"OnlyHave", Job{Have: "km"}, false},
		{"Empty", Job{Name: "blank"}, true},
		{"NaN", Job{Have: "km", Want: "m", Values: []float64{math.NaN()}}, true},
		{"Inf", Job{Have: "km", Want: "m", Values: []float64{math.Inf(1)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.job.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJobLabel(t *testing.T) {
	if got := (Job{Name: "velocity", Have: "km/s"}).Label(); got != "velocity" {
		t.Errorf("Label() = %q", got)
	}
	if got := (Job{Have: "km/s", Want: "m/s"}).Label(); got != "km/s -> m/s" {
		t.Errorf("Label() = %q", got)
	}
}

func TestExecute(t *testing.T) {
	r := quietRunner(cache.NewMemoryCache())
	jobs := []Job{
		{Name: "velocity", Have: "km/s", Want: "m/s", Values: []float64{1, 2.5}},
		{Name: "bad", Have: "deg", Want: "m", Values: []float64{1}},
		{Name: "spectral", Have: "log(MHz)", Want: "log(Hz)", Values: []float64{0}},
	}

	results, err := r.Execute(context.Background(), Options{}, jobs)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}

	approx := cmpopts.EquateApprox(1e-12, 1e-12)

	v := results[0]
	if !v.OK() || v.Status != units.StatusSuccess || v.Message != "Success" {
		t.Errorf("velocity: status %d %q", v.Status, v.Message)
	}
	if diff := cmp.Diff([]float64{1000, 2500}, floats(v.Converted), approx); diff != "" {
		t.Errorf("velocity converted mismatch (-want +got):\n%s", diff)
	}

	b := results[1]
	if b.OK() || b.Status != units.StatusBadUnitSpec {
		t.Errorf("bad: status %d, want %d", b.Status, units.StatusBadUnitSpec)
	}
	if b.Power != 1 || b.Scale != 0 || len(b.Converted) != 0 {
		t.Errorf("bad: conversion %+v converted %v", b.Conversion, b.Converted)
	}

	s := results[2]
	if diff := cmp.Diff([]float64{6}, floats(s.Converted), approx); diff != "" {
		t.Errorf("spectral converted mismatch (-want +got):\n%s", diff)
	}

	stats := Summarize(results)
	if stats.Jobs != 3 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	observability.Reset()
	counters := &observability.Counters{}
	observability.SetCacheHooks(counters)
	defer observability.Reset()

	r := quietRunner(cache.NewMemoryCache())
	jobs := []Job{
		{Have: "km", Want: "m", Values: []float64{1}},
		{Have: "km", Want: "m", Values: []float64{2}},
	}
	results, err := r.Execute(context.Background(), Options{}, jobs)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if results[0].CacheHit {
		t.Error("first job should miss")
	}
	if !results[1].CacheHit {
		t.Error("second identical job should hit")
	}
	if results[1].Converted[0] != 2000 {
		t.Errorf("cached conversion gave %v", results[1].Converted)
	}
	if counters.CacheHits.Load() != 1 || counters.CacheWrites.Load() != 1 {
		t.Errorf("hits=%d writes=%d, want 1 and 1", counters.CacheHits.Load(), counters.CacheWrites.Load())
	}

	// Refresh bypasses the cache.
	results, _ = r.Execute(context.Background(), Options{Refresh: true}, jobs[:1])
	if results[0].CacheHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteNullCacheNeverHits(t *testing.T) {
	r := quietRunner(nil)
	jobs := []Job{{Have: "km", Want: "m"}, {Have: "km", Want: "m"}}
	results, err := r.Execute(context.Background(), Options{}, jobs)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for i, res := range results {
		if res.CacheHit {
			t.Errorf("job %d hit a null cache", i)
		}
	}
}

func TestExecuteWarnings(t *testing.T) {
	r := quietRunner(nil)
	jobs := []Job{{Have: "S", Want: "ms", Values: []float64{1}}}

	results, _ := r.Execute(context.Background(), Options{Control: units.TranslateS}, jobs)
	res := results[0]
	if !res.OK() {
		t.Fatalf("status %d: %s", res.Status, res.Message)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", res.Warnings)
	}
	if math.Abs(float64(res.Converted[0])-1000) > 1e-9 {
		t.Errorf("converted = %v, want [1000]", res.Converted)
	}
}

func TestExecuteInvalidJob(t *testing.T) {
	r := quietRunner(nil)
	jobs := []Job{
		{Name: "empty"},
		{Name: "nan", Have: "m", Want: "km", Values: []float64{math.NaN()}},
		{Have: "h", Want: "min"},
	}
	results, err := r.Execute(context.Background(), Options{}, jobs)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, res := range results[:2] {
		if res.Status != StatusInvalidJob || res.OK() {
			t.Errorf("%s: status = %d, OK = %v; want %d and not OK", res.Name, res.Status, res.OK(), StatusInvalidJob)
		}
		if res.Message == "" {
			t.Errorf("%s: missing validation message", res.Name)
		}
	}
	if !results[2].OK() {
		t.Errorf("valid job after invalid ones failed: %s", results[2].Message)
	}
	if stats := Summarize(results); stats.Failed != 2 {
		t.Errorf("Summarize counted %d failures, want 2", stats.Failed)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := quietRunner(nil)
	if _, err := r.Execute(context.Background(), Options{Control: 9}, nil); err == nil {
		t.Error("invalid control should fail")
	}
}

func TestExecuteCancelled(t *testing.T) {
	r := quietRunner(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.Execute(ctx, Options{}, []Job{{Have: "km", Want: "m"}})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results after cancellation", len(results))
	}
}

func TestRunnerParse(t *testing.T) {
	r := quietRunner(cache.NewMemoryCache())
	ctx := context.Background()

	if _, err := r.Parse(ctx, Options{}, "KM"); units.StatusOf(err) != units.StatusBadInitialSymbol {
		t.Errorf("untranslated alias: status %d", units.StatusOf(err))
	}

	spec, hit, err := r.ParseWithCacheInfo(ctx, Options{Translate: true}, "KM")
	if err != nil || hit {
		t.Fatalf("Parse = %v, hit %v", err, hit)
	}
	if spec.Scale != 1000 || spec.Dims[units.Length] != 1 {
		t.Errorf("spec = %+v", spec)
	}

	cached, hit, err := r.ParseWithCacheInfo(ctx, Options{Translate: true}, "KM")
	if err != nil || !hit {
		t.Fatalf("second Parse = %v, hit %v", err, hit)
	}
	if cached != spec {
		t.Errorf("cached spec %+v != %+v", cached, spec)
	}

	_, err = r.Parse(ctx, Options{Translate: true}, "[km")
	if units.StatusOf(err) != units.StatusParserError {
		t.Errorf("unbalanced bracket: status %d", units.StatusOf(err))
	}
	wrapped, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("err = %T, want *errors.Error", err)
	}
	if cause, ok := wrapped.Cause.(*errors.Error); !ok || cause.Function != "units.Translate" {
		t.Errorf("translate failure should keep its origin, got %v", err)
	}
}

func TestNumberJSON(t *testing.T) {
	data, err := json.Marshal([]Number{1.5, Number(math.NaN()), Number(math.Inf(-1)), 1e-30})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), "[1.5,null,null,1e-30]"; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	var back []Number
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back[0] != 1.5 || !math.IsNaN(float64(back[1])) {
		t.Errorf("Unmarshal = %v", back)
	}
}

func TestResultJSON(t *testing.T) {
	res := Result{
		Name:       "velocity",
		Have:       "km/s",
		Want:       "m/s",
		Message:    "Success",
		Conversion: units.Conversion{Scale: 1000, Power: 1},
		Values:     []float64{1},
		Converted:  []Number{1000},
		CacheHit:   true,
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"name":"velocity","have":"km/s","want":"m/s","status":0,"message":"Success",` +
		`"scale":1000,"offset":0,"power":1,"values":[1],"converted":[1000]}`
	if string(data) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", data, want)
	}
}
