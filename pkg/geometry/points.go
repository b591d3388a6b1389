package geometry

import (
	"fmt"
	"math/rand"
)

// ParsePoints converts raw coordinate rows into Points. Every row must have
// the same width, either 2 or 3; two-wide rows are embedded with Z = 0.
// Returns ErrNoPoints for an empty input, ErrInvalidDimension for rows that
// are not 2 or 3 wide, and ErrDimensionMismatch for ragged input.
func ParsePoints(rows [][]float64) ([]Point, error) {
	if len(rows) == 0 {
		return nil, ErrNoPoints
	}
	width := len(rows[0])
	if width != 2 && width != 3 {
		return nil, fmt.Errorf("%w: got %d components", ErrInvalidDimension, width)
	}
	points := make([]Point, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d components, expected %d",
				ErrDimensionMismatch, i, len(row), width)
		}
		var p Point
		copy(p[:], row)
		points[i] = p
	}
	return points, nil
}

// ValidateShape checks that points fit the declared domain shape: every
// point must be exactly zero on each collapsed (zero-extent) axis.
// A nil shape imposes no constraint.
func ValidateShape(points []Point, shape []float64) error {
	if shape == nil {
		return nil
	}
	if len(shape) != 2 && len(shape) != 3 {
		return fmt.Errorf("%w: shape has %d components", ErrInvalidDimension, len(shape))
	}
	var extent Point
	copy(extent[:], shape)
	for ax := 0; ax < 3; ax++ {
		if extent[ax] != 0 {
			continue
		}
		for i, p := range points {
			if p[ax] != 0 {
				return fmt.Errorf("%w: point %d has nonzero component on collapsed axis %d",
					ErrDimensionMismatch, i, ax)
			}
		}
	}
	return nil
}

// Generate produces count points uniformly distributed inside the domain
// [0, shape[0]) x [0, shape[1]) x [0, shape[2]). A zero extent collapses
// that axis: generated points carry exactly 0 there, embedding a 2D domain
// in the 3D representation. A two-component shape is treated as having a
// collapsed third axis. Generation is deterministic for a given seed.
func Generate(count int, shape []float64, seed uint64) ([]Point, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count %d", ErrNoPoints, count)
	}
	if len(shape) != 2 && len(shape) != 3 {
		return nil, fmt.Errorf("%w: shape has %d components", ErrInvalidDimension, len(shape))
	}
	var extent Point
	copy(extent[:], shape)

	rng := rand.New(rand.NewSource(int64(seed)))
	points := make([]Point, count)
	for i := range points {
		var p Point
		for ax := 0; ax < 3; ax++ {
			if extent[ax] > 0 {
				p[ax] = rng.Float64() * extent[ax]
			}
		}
		points[i] = p
	}
	return points, nil
}
