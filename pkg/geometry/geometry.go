// Package geometry provides the coordinate primitives for spatial network
// generation: a fixed three-component point type, vector helpers, and point
// sourcing from either explicit coordinate lists or a domain shape.
//
// Coordinates are always stored as three components. Two-dimensional domains
// are embedded by holding the collapsed axis at exactly zero, so downstream
// consumers (tessellation, spatial indexing, filtering) never branch on
// dimensionality.
package geometry

import (
	"errors"
	"math"
)

var (
	// ErrDimensionMismatch is returned by ParsePoints and Validate when
	// point coordinates do not all share the same dimensionality, or when
	// the points disagree with a declared domain shape.
	ErrDimensionMismatch = errors.New("coordinate dimensionality mismatch")

	// ErrInvalidDimension is returned when coordinates are neither two-
	// nor three-dimensional.
	ErrInvalidDimension = errors.New("coordinates must be 2D or 3D")

	// ErrNoPoints is returned when an empty point sequence is supplied
	// where at least one point is required.
	ErrNoPoints = errors.New("no points supplied")
)

// Point is a location in real space. Two-dimensional points keep Z at zero.
type Point [3]float64

// Add returns the component-wise sum p + q.
func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Scale returns p with every component multiplied by s.
func (p Point) Scale(s float64) Point {
	return Point{p[0] * s, p[1] * s, p[2] * s}
}

// Dot returns the scalar product of p and q.
func (p Point) Dot(q Point) float64 {
	return p[0]*q[0] + p[1]*q[1] + p[2]*q[2]
}

// Cross returns the vector product p x q.
func (p Point) Cross(q Point) Point {
	return Point{
		p[1]*q[2] - p[2]*q[1],
		p[2]*q[0] - p[0]*q[2],
		p[0]*q[1] - p[1]*q[0],
	}
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	return math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Norm()
}

// DistanceSquared returns the squared Euclidean distance between p and q.
// It avoids the square root for comparisons where only ordering matters.
func (p Point) DistanceSquared(q Point) float64 {
	d := p.Sub(q)
	return d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return p.Add(q).Scale(0.5)
}

// ActiveAxes reports which of the three axes carry information: an axis is
// active when any point has a nonzero component on it. A collapsed axis
// (all zeros) marks a lower-dimensional embedding.
func ActiveAxes(points []Point) [3]bool {
	var active [3]bool
	for _, p := range points {
		for ax := 0; ax < 3; ax++ {
			if p[ax] != 0 {
				active[ax] = true
			}
		}
	}
	return active
}

// Dimensionality returns the number of active axes in points.
func Dimensionality(points []Point) int {
	active := ActiveAxes(points)
	n := 0
	for _, a := range active {
		if a {
			n++
		}
	}
	return n
}
