package cache

import (
	"context"
	"time"
)

// NullCache is a no-op cache that never stores anything. It is the default
// of [pipeline.NewRunner] when no cache is given, what --no-cache selects,
// and the fallback when the cache directory cannot be created.
//
// Every Get is a miss and every Set, Delete and Close succeeds.
//
// [pipeline.NewRunner]: https://pkg.go.dev/github.com/matzehuels/fitsunits/pkg/pipeline#NewRunner
type NullCache struct{}

// NewNullCache returns a NullCache as a [Cache].
func NewNullCache() Cache { return NullCache{} }

// Get always reports a miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error {
	return nil
}

// Close does nothing.
func (NullCache) Close() error {
	return nil
}
