package tessellation

import (
	"errors"
	"testing"

	"github.com/poregraph/poregraph/pkg/geometry"
)

func TestSingleTetrahedron(t *testing.T) {
	points := []geometry.Point{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}

	tess, err := Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(tess.Conns) != 6 {
		t.Fatalf("a single tetrahedron has 6 edges, got %d: %v", len(tess.Conns), tess.Conns)
	}
	assertWellFormed(t, tess)
}

func TestRandomCube(t *testing.T) {
	points, err := geometry.Generate(50, []float64{1, 1, 1}, 42)
	if err != nil {
		t.Fatal(err)
	}

	tess, err := Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(tess.Coords) != 50 {
		t.Fatalf("node count changed: %d", len(tess.Coords))
	}
	if len(tess.Conns) == 0 {
		t.Fatal("expected edges")
	}
	assertWellFormed(t, tess)

	// Every node of a 3D Delaunay tessellation has at least one neighbor.
	degree := make([]int, len(tess.Coords))
	for _, e := range tess.Conns {
		degree[e[0]]++
		degree[e[1]]++
	}
	for i, d := range degree {
		if d == 0 {
			t.Errorf("node %d has no incident edges", i)
		}
	}
}

func TestNearestNeighborEdgesPresent(t *testing.T) {
	// The nearest-neighbor graph is a subgraph of the Delaunay tessellation.
	points, err := geometry.Generate(30, []float64{1, 1, 1}, 7)
	if err != nil {
		t.Fatal(err)
	}
	tess, err := Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}

	adjacent := make(map[[2]int]bool, len(tess.Conns))
	for _, e := range tess.Conns {
		adjacent[e] = true
	}

	for i, p := range points {
		best, bestDist := -1, 0.0
		for j, q := range points {
			if i == j {
				continue
			}
			if d := p.DistanceSquared(q); best == -1 || d < bestDist {
				best, bestDist = j, d
			}
		}
		e := [2]int{i, best}
		if e[0] > e[1] {
			e[0], e[1] = e[1], e[0]
		}
		if !adjacent[e] {
			t.Errorf("nearest-neighbor edge %v missing from tessellation", e)
		}
	}
}

func TestCoplanarDegenerate3D(t *testing.T) {
	// Four points spanning x, y and z axes in aggregate but lying in one
	// plane tessellate to nothing in 3D.
	points := []geometry.Point{
		{0, 0, 0}, {1, 0, 1}, {0, 1, 0}, {1, 1, 1},
		{0.5, 0.5, 0.5}, {0.2, 0.7, 0.2},
	}
	// All points satisfy z = x, a plane: active in 3 axes, volume zero.
	if _, err := (Delaunay{}).Tessellate(points); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("coplanar points: expected ErrDegenerateGeometry, got %v", err)
	}
}
