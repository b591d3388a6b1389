// Package tessellation produces the candidate edge set for spatial network
// generation: a Delaunay tessellation of a point set, reduced to a
// deduplicated undirected edge list over the original node indices.
//
// The Delaunay machinery itself is pluggable through the Provider
// interface. The default provider triangulates two-dimensional point sets
// with github.com/fogleman/delaunay and tetrahedralizes three-dimensional
// sets with an incremental Bowyer-Watson pass.
package tessellation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/poregraph/poregraph/pkg/geometry"
)

var (
	// ErrInsufficientPoints is returned when fewer than dimensionality+1
	// points are supplied, which is too few to tessellate.
	ErrInsufficientPoints = errors.New("insufficient points to tessellate")

	// ErrDegenerateGeometry is returned when the point set admits no valid
	// tessellation (collinear in 2D, coplanar in 3D, or coincident points).
	ErrDegenerateGeometry = errors.New("degenerate point geometry")
)

// Tessellation holds node coordinates and the candidate edge list.
// Conns contains each unordered adjacency (i, j) exactly once with i < j,
// sorted lexicographically, with no self edges.
type Tessellation struct {
	Coords []geometry.Point
	Conns  [][2]int
}

// Provider turns a point set into a tessellation. Implementations must be
// pure: the same points always yield the same tessellation, and the input
// slice is never mutated.
type Provider interface {
	Tessellate(points []geometry.Point) (Tessellation, error)
}

// Delaunay is the default Provider. Dimensionality is inferred from the
// active axes of the point set: an axis held at zero across all points is
// treated as collapsed, so 2D domains embedded with Z = 0 triangulate in
// the plane.
type Delaunay struct{}

// Tessellate computes the Delaunay tessellation of points and extracts the
// candidate edge list. Returns ErrInsufficientPoints when the point count
// is below dimensionality+1 and ErrDegenerateGeometry when the provider
// cannot tessellate the configuration.
func (Delaunay) Tessellate(points []geometry.Point) (Tessellation, error) {
	if len(points) == 0 {
		return Tessellation{}, geometry.ErrNoPoints
	}

	axes := activeAxisIndices(points)
	dim := len(axes)
	if dim < 2 {
		return Tessellation{}, fmt.Errorf("%w: points span %d dimension(s)", ErrDegenerateGeometry, dim)
	}
	if len(points) < dim+1 {
		return Tessellation{}, fmt.Errorf("%w: %d points in %dD, need at least %d",
			ErrInsufficientPoints, len(points), dim, dim+1)
	}

	var conns [][2]int
	var err error
	if dim == 2 {
		conns, err = triangulate(points, axes)
	} else {
		conns, err = tetrahedralize(points)
	}
	if err != nil {
		return Tessellation{}, err
	}

	coords := make([]geometry.Point, len(points))
	copy(coords, points)
	return Tessellation{Coords: coords, Conns: conns}, nil
}

var _ Provider = Delaunay{}

// activeAxisIndices returns the indices of axes carrying information.
func activeAxisIndices(points []geometry.Point) []int {
	active := geometry.ActiveAxes(points)
	axes := make([]int, 0, 3)
	for ax, a := range active {
		if a {
			axes = append(axes, ax)
		}
	}
	return axes
}

// edgeSet accumulates undirected edges with deduplication. Self edges are
// dropped; every pair is stored with the smaller index first.
type edgeSet struct {
	seen map[[2]int]struct{}
}

func newEdgeSet() *edgeSet {
	return &edgeSet{seen: make(map[[2]int]struct{})}
}

func (s *edgeSet) add(i, j int) {
	if i == j {
		return
	}
	if i > j {
		i, j = j, i
	}
	s.seen[[2]int{i, j}] = struct{}{}
}

// sorted returns the accumulated edges in lexicographic (i, j) order.
func (s *edgeSet) sorted() [][2]int {
	conns := make([][2]int, 0, len(s.seen))
	for e := range s.seen {
		conns = append(conns, e)
	}
	sort.Slice(conns, func(a, b int) bool {
		if conns[a][0] != conns[b][0] {
			return conns[a][0] < conns[b][0]
		}
		return conns[a][1] < conns[b][1]
	})
	return conns
}
