package network

import (
	"runtime"
	"sync"

	"github.com/poregraph/poregraph/pkg/geometry"
	"github.com/poregraph/poregraph/pkg/spatial"
	"github.com/poregraph/poregraph/pkg/tessellation"
)

// DefaultEpsilon absorbs floating-point round-off in the Gabriel predicate.
// An edge's own endpoints sit exactly at distance r from its midpoint, so
// without slack the nearest-neighbor query could spuriously reject an edge
// by a few ulps.
const DefaultEpsilon = 1e-3

// FilterOptions configures the Gabriel filter.
type FilterOptions struct {
	// Epsilon is the relative tolerance of the keep rule n >= r*(1-Epsilon).
	// Zero selects DefaultEpsilon; negative values are treated as zero slack.
	Epsilon float64

	// Workers bounds the number of goroutines evaluating edge predicates.
	// Zero selects GOMAXPROCS.
	Workers int

	// Index builds the nearest-neighbor index over the node coordinates.
	// Nil selects spatial.NewKDTree.
	Index spatial.Builder
}

func (o FilterOptions) withDefaults() FilterOptions {
	if o.Epsilon == 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.Epsilon < 0 {
		o.Epsilon = 0
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Index == nil {
		o.Index = spatial.NewKDTree
	}
	return o
}

// Filter returns the subset of candidate edges whose diametral sphere
// contains no node other than the edge's own endpoints: for each edge it
// takes the midpoint m and half-length r, queries the nearest node distance
// n from m, and keeps the edge iff n >= r*(1-epsilon).
//
// The result preserves the relative order of conns (stable filter). The
// predicate is evaluated independently per edge against a read-only index,
// so edges are scored in parallel and the keep flags merged afterwards.
// Filter is a pure function of its inputs: no randomness, no shared state.
func Filter(coords []geometry.Point, conns [][2]int, opts FilterOptions) [][2]int {
	opts = opts.withDefaults()
	if len(conns) == 0 {
		return [][2]int{}
	}

	index := opts.Index(coords)
	factor := 1 - opts.Epsilon

	keep := make([]bool, len(conns))
	workers := opts.Workers
	if workers > len(conns) {
		workers = len(conns)
	}

	var wg sync.WaitGroup
	chunk := (len(conns) + workers - 1) / workers
	for start := 0; start < len(conns); start += chunk {
		end := start + chunk
		if end > len(conns) {
			end = len(conns)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for e := start; e < end; e++ {
				a, b := coords[conns[e][0]], coords[conns[e][1]]
				m := a.Midpoint(b)
				r := a.Distance(b) / 2
				keep[e] = index.NearestDistance(m) >= r*factor
			}
		}(start, end)
	}
	wg.Wait()

	retained := make([][2]int, 0, len(conns))
	for e, k := range keep {
		if k {
			retained = append(retained, conns[e])
		}
	}
	return retained
}

// Gabriel derives a network from a Delaunay tessellation by filtering its
// candidate edges with the Gabriel predicate. The node coordinate sequence
// is carried over unchanged: nodes left without edges remain in place.
func Gabriel(t tessellation.Tessellation, opts FilterOptions, nodeLabel, edgeLabel string) *Network {
	return New(t.Coords, Filter(t.Coords, t.Conns, opts), nodeLabel, edgeLabel)
}
