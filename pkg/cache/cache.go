// Package cache provides content-addressed caching for generated networks
// and rendered artifacts.
//
// A Cache stores opaque byte values under string keys with optional TTLs.
// Backends: FileCache (CLI, XDG cache dir), RedisCache (server deployments),
// NullCache (caching disabled). Keys are produced by a Keyer so that every
// consumer derives them the same way.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per value class. Generated networks are pure functions of
// their inputs, so they could live forever; the TTLs bound disk usage.
const (
	// TTLNetwork is the lifetime of cached generated networks.
	TTLNetwork = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present (a miss is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NetworkKeyOpts are the generation parameters that distinguish cached
// networks derived from the same input points.
type NetworkKeyOpts struct {
	Epsilon   float64
	NodeLabel string
	EdgeLabel string
}

// ArtifactKeyOpts are the rendering parameters that distinguish cached
// artifacts derived from the same network.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// NetworkKey derives the key for a generated network from the hash of
	// its input point set and the generation options.
	NetworkKey(inputHash string, opts NetworkKeyOpts) string

	// ArtifactKey derives the key for a rendered artifact from the hash of
	// its network document and the rendering options.
	ArtifactKey(networkHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing the structured options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// NetworkKey implements Keyer.
func (k *DefaultKeyer) NetworkKey(inputHash string, opts NetworkKeyOpts) string {
	return hashKey("network", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", networkHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, for
// deployments where different users need separate cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// NetworkKey generates a prefixed key for network caching.
func (k *ScopedKeyer) NetworkKey(inputHash string, opts NetworkKeyOpts) string {
	return k.prefix + k.inner.NetworkKey(inputHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(networkHash, opts)
}
