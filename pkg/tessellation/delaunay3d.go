package tessellation

import (
	"fmt"
	"math"

	"github.com/poregraph/poregraph/pkg/geometry"
)

// tetrahedron is a simplex of the incremental tessellation with its
// precomputed circumsphere.
type tetrahedron struct {
	v      [4]int
	center geometry.Point
	r2     float64
}

// tetrahedralize computes the 3D Delaunay tessellation of points with the
// incremental Bowyer-Watson algorithm: seed a super-tetrahedron enclosing
// every point, insert points one at a time by carving out the cavity of
// simplices whose circumsphere contains the point, and re-fill the cavity
// from its boundary faces. Simplices touching the super-tetrahedron are
// discarded at the end.
func tetrahedralize(points []geometry.Point) ([][2]int, error) {
	n := len(points)
	verts := make([]geometry.Point, n, n+4)
	copy(verts, points)

	lo, hi := bounds(points)
	c := lo.Midpoint(hi)
	s := 64*(hi.Sub(lo).Norm()/2) + 1
	verts = append(verts,
		c.Add(geometry.Point{s, s, s}),
		c.Add(geometry.Point{s, -s, -s}),
		c.Add(geometry.Point{-s, s, -s}),
		c.Add(geometry.Point{-s, -s, s}),
	)

	root, ok := newTetrahedron(verts, n, n+1, n+2, n+3)
	if !ok {
		return nil, fmt.Errorf("%w: could not seed super-tetrahedron", ErrDegenerateGeometry)
	}
	tets := []tetrahedron{root}

	for i := 0; i < n; i++ {
		p := verts[i]

		// Partition simplices into the insertion cavity and the survivors.
		kept := tets[:0]
		var cavity []tetrahedron
		for _, t := range tets {
			if p.DistanceSquared(t.center) <= t.r2*(1+1e-12) {
				cavity = append(cavity, t)
			} else {
				kept = append(kept, t)
			}
		}
		if len(cavity) == 0 {
			return nil, fmt.Errorf("%w: point %d falls outside every circumsphere", ErrDegenerateGeometry, i)
		}

		// Boundary faces appear in exactly one cavity simplex.
		faces := make(map[[3]int]int, 4*len(cavity))
		for _, t := range cavity {
			for _, f := range tetFaces(t.v) {
				faces[f]++
			}
		}

		tets = kept
		for f, count := range faces {
			if count != 1 {
				continue
			}
			// A flat simplex means p is coplanar with the face; skip it and
			// let later insertions heal the cavity.
			if t, ok := newTetrahedron(verts, f[0], f[1], f[2], i); ok {
				tets = append(tets, t)
			}
		}
	}

	edges := newEdgeSet()
	interior := 0
	for _, t := range tets {
		if t.v[0] >= n || t.v[1] >= n || t.v[2] >= n || t.v[3] >= n {
			continue
		}
		interior++
		for a := 0; a < 4; a++ {
			for b := a + 1; b < 4; b++ {
				edges.add(t.v[a], t.v[b])
			}
		}
	}
	if interior == 0 {
		return nil, fmt.Errorf("%w: no interior simplices (coplanar input?)", ErrDegenerateGeometry)
	}
	return edges.sorted(), nil
}

// tetFaces returns the four triangular faces of a simplex, each with its
// vertex indices sorted so identical faces compare equal.
func tetFaces(v [4]int) [4][3]int {
	faces := [4][3]int{
		{v[0], v[1], v[2]},
		{v[0], v[1], v[3]},
		{v[0], v[2], v[3]},
		{v[1], v[2], v[3]},
	}
	for i := range faces {
		sortTriple(&faces[i])
	}
	return faces
}

func sortTriple(f *[3]int) {
	if f[0] > f[1] {
		f[0], f[1] = f[1], f[0]
	}
	if f[1] > f[2] {
		f[1], f[2] = f[2], f[1]
	}
	if f[0] > f[1] {
		f[0], f[1] = f[1], f[0]
	}
}

// newTetrahedron builds a simplex and its circumsphere. Reports ok = false
// for (near-)flat vertex configurations, which have no finite circumsphere.
func newTetrahedron(verts []geometry.Point, i, j, k, l int) (tetrahedron, bool) {
	p0 := verts[i]
	a := verts[j].Sub(p0)
	b := verts[k].Sub(p0)
	c := verts[l].Sub(p0)

	crossBC := b.Cross(c)
	denom := 2 * a.Dot(crossBC)
	if math.Abs(denom) <= 1e-12*a.Norm()*b.Norm()*c.Norm() {
		return tetrahedron{}, false
	}

	// Circumcenter offset from p0:
	// (|a|^2 (b x c) + |b|^2 (c x a) + |c|^2 (a x b)) / (2 a . (b x c))
	o := crossBC.Scale(a.Dot(a)).
		Add(c.Cross(a).Scale(b.Dot(b))).
		Add(a.Cross(b).Scale(c.Dot(c))).
		Scale(1 / denom)

	return tetrahedron{
		v:      [4]int{i, j, k, l},
		center: p0.Add(o),
		r2:     o.Dot(o),
	}, true
}

// bounds returns the axis-aligned bounding box of points.
func bounds(points []geometry.Point) (lo, hi geometry.Point) {
	lo = points[0]
	hi = points[0]
	for _, p := range points[1:] {
		for ax := 0; ax < 3; ax++ {
			lo[ax] = math.Min(lo[ax], p[ax])
			hi[ax] = math.Max(hi[ax], p[ax])
		}
	}
	return lo, hi
}
