// Package store provides durable persistence for generated networks.
//
// Where the cache holds reproducible byte blobs keyed by content, the
// store holds named snapshots with identity and metadata: a snapshot is
// assigned an ID on save and can be listed and fetched later. Backends:
// MemoryStore for tests and single-process use, MongoStore for server
// deployments.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/poregraph/poregraph/pkg/network"
)

// ErrNotFound is returned when the requested snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a persisted network with identity and provenance.
type Snapshot struct {
	ID        string           `bson:"_id" json:"id"`
	Name      string           `bson:"name,omitempty" json:"name,omitempty"`
	Network   *network.Network `bson:"network" json:"network"`
	Epsilon   float64          `bson:"epsilon" json:"epsilon"`
	Seed      uint64           `bson:"seed,omitempty" json:"seed,omitempty"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
}

// Store persists network snapshots.
type Store interface {
	// Save persists a snapshot and returns its assigned ID. A snapshot
	// with an empty ID receives a fresh one.
	Save(ctx context.Context, snap *Snapshot) (string, error)

	// Get fetches a snapshot by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// List returns snapshot metadata ordered by creation time, newest
	// first, up to limit entries. The returned snapshots omit the network
	// payload; fetch individual snapshots with Get.
	List(ctx context.Context, limit int) ([]*Snapshot, error)

	// Delete removes a snapshot. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
