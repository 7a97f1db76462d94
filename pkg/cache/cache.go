// Package cache stores parsed unit specifications and conversions so that
// repeated work in a batch, or across CLI runs, is skipped.
//
// # Backends
//
// [Cache] is a small byte-oriented key/value interface with three
// implementations:
//
//   - [NullCache]: never stores anything (the default)
//   - [MemoryCache]: an in-process map, safe for concurrent use
//   - [FileCache]: one JSON file per entry under a directory, for reuse
//     between CLI invocations
//
// # Keys
//
// A [Keyer] derives cache keys from unit strings and the options that
// influence the result (translation control bits, whether translation runs
// at all). [DefaultKeyer] hashes these with SHA-256; [ScopedKeyer] prefixes
// every key, which is how entries written by one build are kept apart from
// those of another:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Scope()+":")
//	key := keyer.ConversionKey("km/s", "m/s", cache.KeyOpts{Translate: true})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with hit == false and a nil error. A ttl of zero passed
// to Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	TTLSpec       = 30 * 24 * time.Hour
	TTLConversion = 30 * 24 * time.Hour
)
