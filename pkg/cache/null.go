package cache

import (
	"context"
	"time"
)

// NullCache discards everything. It serves --no-cache runs and tests:
// generation is a pure function of its inputs, so the only cost of a
// missing cache is recomputation.
type NullCache struct{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Delete has nothing to remove.
func (NullCache) Delete(context.Context, string) error {
	return nil
}

// Close has nothing to release.
func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}
