package tessellation

import (
	"fmt"

	"github.com/fogleman/delaunay"

	"github.com/poregraph/poregraph/pkg/geometry"
)

// triangulate computes the 2D Delaunay triangulation of points projected
// onto the two active axes and returns the deduplicated edge list.
func triangulate(points []geometry.Point, axes []int) ([][2]int, error) {
	a0, a1 := axes[0], axes[1]
	projected := make([]delaunay.Point, len(points))
	for i, p := range points {
		projected[i] = delaunay.Point{X: p[a0], Y: p[a1]}
	}

	tri, err := delaunay.Triangulate(projected)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateGeometry, err)
	}
	if len(tri.Triangles) == 0 {
		return nil, fmt.Errorf("%w: triangulation produced no simplices", ErrDegenerateGeometry)
	}

	edges := newEdgeSet()
	for t := 0; t < len(tri.Triangles); t += 3 {
		i, j, k := tri.Triangles[t], tri.Triangles[t+1], tri.Triangles[t+2]
		edges.add(i, j)
		edges.add(j, k)
		edges.add(k, i)
	}
	return edges.sorted(), nil
}
