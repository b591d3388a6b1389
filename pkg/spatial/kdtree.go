package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/poregraph/poregraph/pkg/geometry"
)

// kdIndex wraps a gonum k-d tree. Construction is O(N log N); queries are
// O(log N) expected. The tree is static after construction, so concurrent
// NearestDistance calls are safe.
type kdIndex struct {
	tree *kdtree.Tree
}

// NewKDTree builds a k-d tree index over points. It is the default Builder
// for the Gabriel filter.
func NewKDTree(points []geometry.Point) Index {
	data := make(kdtree.Points, len(points))
	for i, p := range points {
		q := make(kdtree.Point, 3)
		copy(q, p[:])
		data[i] = q
	}
	return &kdIndex{tree: kdtree.New(data, false)}
}

// NearestDistance returns the distance from q to the closest indexed point.
func (x *kdIndex) NearestDistance(q geometry.Point) float64 {
	query := make(kdtree.Point, 3)
	copy(query, q[:])
	// gonum's kdtree.Point.Distance is the squared Euclidean distance.
	_, d2 := x.tree.Nearest(query)
	return math.Sqrt(d2)
}

var _ Index = (*kdIndex)(nil)
var _ Builder = NewKDTree
