// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about generation stages and cache
// operations.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGenerationHooks(&myGenerationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generation().OnTessellateStart(ctx, pointCount)
//	// ... tessellate ...
//	observability.Generation().OnTessellateComplete(ctx, edgeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from the network generation pipeline.
type GenerationHooks interface {
	// Tessellation events
	OnTessellateStart(ctx context.Context, pointCount int)
	OnTessellateComplete(ctx context.Context, edgeCount int, duration time.Duration, err error)

	// Gabriel filter events
	OnFilterStart(ctx context.Context, candidateCount int)
	OnFilterComplete(ctx context.Context, retainedCount int, duration time.Duration)
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

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnTessellateStart(context.Context, int) {}
func (NoopGenerationHooks) OnTessellateComplete(context.Context, int, time.Duration, error) {
}
func (NoopGenerationHooks) OnFilterStart(context.Context, int)                   {}
func (NoopGenerationHooks) OnFilterComplete(context.Context, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registry
// =============================================================================

var (
	mu              sync.RWMutex
	generationHooks GenerationHooks = NoopGenerationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
)

// SetGenerationHooks registers the generation hooks. Pass nil to restore
// the no-op implementation. Call before the pipeline runs.
func SetGenerationHooks(h GenerationHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopGenerationHooks{}
	}
	generationHooks = h
}

// SetCacheHooks registers the cache hooks. Pass nil to restore the no-op
// implementation. Call before the pipeline runs.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	mu.RLock()
	defer mu.RUnlock()
	return generationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
