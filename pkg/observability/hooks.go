// Package observability provides instrumentation hooks for the pipeline.
//
// Consumers register hooks to receive events about unit translation,
// parsing, conversion, batch execution and cache operations. Until then every
// event goes to a no-op implementation.
//
// Hooks are registered by commands, never by libraries.
//
// # Usage
//
// Register hooks at application startup:
//
//	stats := &observability.Counters{}
//	defer observability.Install(stats)()
//	// ... run the batch
//	log.Info("done", "hits", stats.CacheHits.Load())
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	spec, err := units.Parse(unitstr)
//	observability.Pipeline().OnParse(ctx, unitstr, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the conversion pipeline.
type PipelineHooks interface {
	// Unit events. status is the Translate status code.
	OnTranslate(ctx context.Context, unitstr string, status int, duration time.Duration)
	OnParse(ctx context.Context, unitstr string, duration time.Duration, err error)
	OnConvert(ctx context.Context, have, want string, duration time.Duration, err error)

	// Batch events
	OnBatchStart(ctx context.Context, jobs int)
	OnBatchComplete(ctx context.Context, jobs, failed int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnTranslate(context.Context, string, int, time.Duration)            {}
func (NoopPipelineHooks) OnParse(context.Context, string, time.Duration, error)              {}
func (NoopPipelineHooks) OnConvert(context.Context, string, string, time.Duration, error)    {}
func (NoopPipelineHooks) OnBatchStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnBatchComplete(context.Context, int, int, time.Duration)           {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// Hooks receives both pipeline and cache events. [Counters] implements it.
type Hooks interface {
	PipelineHooks
	CacheHooks
}

type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
}

var hooks = &registry{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// Install registers h for pipeline and cache events and returns a function
// that restores the previously registered hooks:
//
//	defer observability.Install(counters)()
func Install(h Hooks) (restore func()) {
	hooks.mu.Lock()
	prevPipeline, prevCache := hooks.pipeline, hooks.cache
	hooks.pipeline, hooks.cache = h, h
	hooks.mu.Unlock()

	return func() {
		hooks.mu.Lock()
		hooks.pipeline, hooks.cache = prevPipeline, prevCache
		hooks.mu.Unlock()
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Reset restores the no-op hooks.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
}
