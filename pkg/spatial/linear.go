package spatial

import (
	"math"

	"github.com/poregraph/poregraph/pkg/geometry"
)

// linearIndex scans every point per query. O(N) queries, but no
// construction cost and no tree machinery: the reference implementation
// the k-d tree is tested against, and a reasonable choice for tiny inputs.
type linearIndex struct {
	points []geometry.Point
}

// NewLinear builds a brute-force linear-scan index over points.
func NewLinear(points []geometry.Point) Index {
	pts := make([]geometry.Point, len(points))
	copy(pts, points)
	return &linearIndex{points: pts}
}

// NearestDistance returns the distance from q to the closest indexed point.
func (x *linearIndex) NearestDistance(q geometry.Point) float64 {
	best := math.Inf(1)
	for _, p := range x.points {
		if d2 := q.DistanceSquared(p); d2 < best {
			best = d2
		}
	}
	return math.Sqrt(best)
}

var _ Index = (*linearIndex)(nil)
var _ Builder = NewLinear
