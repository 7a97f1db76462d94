package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is a PipelineHooks and CacheHooks implementation that tallies
// events. The CLI registers one to report cache effectiveness after a batch.
type Counters struct {
	Translations atomic.Int64
	Parses       atomic.Int64
	ParseErrors  atomic.Int64
	Conversions  atomic.Int64
	ConvertErrs  atomic.Int64
	CacheHits    atomic.Int64
	CacheMisses  atomic.Int64
	CacheWrites  atomic.Int64
}

func (c *Counters) OnTranslate(context.Context, string, int, time.Duration) {
	c.Translations.Add(1)
}

func (c *Counters) OnParse(_ context.Context, _ string, _ time.Duration, err error) {
	c.Parses.Add(1)
	if err != nil {
		c.ParseErrors.Add(1)
	}
}

func (c *Counters) OnConvert(_ context.Context, _, _ string, _ time.Duration, err error) {
	c.Conversions.Add(1)
	if err != nil {
		c.ConvertErrs.Add(1)
	}
}

func (c *Counters) OnBatchStart(context.Context, int)                        {}
func (c *Counters) OnBatchComplete(context.Context, int, int, time.Duration) {}

func (c *Counters) OnCacheHit(context.Context, string)      { c.CacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)     { c.CacheMisses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int) { c.CacheWrites.Add(1) }

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
)
