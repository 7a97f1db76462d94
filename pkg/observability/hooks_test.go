package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnTranslate(ctx, "KM/SEC", 0, time.Millisecond)
	p.OnParse(ctx, "km/s", time.Millisecond, nil)
	p.OnConvert(ctx, "km/s", "m/s", time.Millisecond, nil)
	p.OnBatchStart(ctx, 3)
	p.OnBatchComplete(ctx, 3, 1, time.Second)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "spec")
	c.OnCacheMiss(ctx, "conv")
	c.OnCacheSet(ctx, "conv", 64)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestInstallRestoresPreviousHooks(t *testing.T) {
	Reset()
	defer Reset()

	outer := &testPipelineHooks{}
	SetPipelineHooks(outer)

	c := &Counters{}
	restore := Install(c)
	if Pipeline() != PipelineHooks(c) || Cache() != CacheHooks(c) {
		t.Fatal("Install should register the hooks for both event kinds")
	}
	Cache().OnCacheHit(context.Background(), "spec")
	if c.CacheHits.Load() != 1 {
		t.Error("installed hooks should receive cache events")
	}

	restore()
	if Pipeline() != outer {
		t.Error("restore should bring back the previous pipeline hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("restore should bring back the previous cache hooks")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := &Counters{}

	c.OnTranslate(ctx, "DEG", 0, 0)
	c.OnParse(ctx, "deg", 0, nil)
	c.OnParse(ctx, "m//s", 0, errors.New("status 8"))
	c.OnConvert(ctx, "deg", "m", 0, errors.New("status 10"))
	c.OnCacheMiss(ctx, "conv")
	c.OnCacheSet(ctx, "conv", 10)
	c.OnCacheHit(ctx, "conv")

	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"Translations", c.Translations.Load(), 1},
		{"Parses", c.Parses.Load(), 2},
		{"ParseErrors", c.ParseErrors.Load(), 1},
		{"Conversions", c.Conversions.Load(), 1},
		{"ConvertErrs", c.ConvertErrs.Load(), 1},
		{"CacheHits", c.CacheHits.Load(), 1},
		{"CacheMisses", c.CacheMisses.Load(), 1},
		{"CacheWrites", c.CacheWrites.Load(), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
