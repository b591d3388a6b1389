// Package spatial provides nearest-neighbor indexes over fixed point sets.
//
// An Index is built once from the full node coordinate sequence and is
// read-only afterwards, so concurrent queries are safe. Only the nearest
// distance is exposed: the Gabriel predicate never needs to know which
// node is nearest, just how far away it is.
package spatial

import "github.com/poregraph/poregraph/pkg/geometry"

// Index answers nearest-neighbor distance queries against a fixed point set.
type Index interface {
	// NearestDistance returns the Euclidean distance from q to the closest
	// indexed point. Ties are broken arbitrarily.
	NearestDistance(q geometry.Point) float64
}

// Builder constructs an Index from a point set. Implementations must accept
// any non-empty slice; the returned Index must be safe for concurrent
// queries.
type Builder func(points []geometry.Point) Index
