package network

import (
	"testing"

	"github.com/poregraph/poregraph/pkg/geometry"
	"github.com/poregraph/poregraph/pkg/spatial"
	"github.com/poregraph/poregraph/pkg/tessellation"
)

func TestUnitSquareKeepsBorderlineDiagonal(t *testing.T) {
	// Every corner of a unit square is equidistant from the center, so the
	// diagonal's midpoint sees the opposite corners at exactly its
	// half-length. Exact equality means no violation: the diagonal stays.
	points := []geometry.Point{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	}
	tess, err := tessellation.Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}

	retained := Filter(tess.Coords, tess.Conns, FilterOptions{})
	if len(retained) != len(tess.Conns) {
		t.Errorf("square: expected all %d candidate edges kept, got %d", len(tess.Conns), len(retained))
	}
}

func TestTriangleApexInsideDiametralCircle(t *testing.T) {
	// The apex (0.5, 0.1) sits 0.1 from the base midpoint, well inside the
	// base edge's diametral circle (r = 0.5), so the base edge is rejected.
	// The two short edges have no node inside their circles and survive.
	points := []geometry.Point{
		{0, 0, 0}, {1, 0, 0}, {0.5, 0.1, 0},
	}
	tess, err := tessellation.Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}
	if len(tess.Conns) != 3 {
		t.Fatalf("expected 3 candidate edges, got %d", len(tess.Conns))
	}

	retained := Filter(tess.Coords, tess.Conns, FilterOptions{})
	if len(retained) != 2 {
		t.Fatalf("expected 2 retained edges, got %d: %v", len(retained), retained)
	}
	for _, e := range retained {
		if e == [2]int{0, 1} {
			t.Error("base edge should be rejected: apex lies inside its diametral circle")
		}
	}
}

func TestExactEqualityRetained(t *testing.T) {
	// Synthetic candidate list: node 2 sits exactly on the diametral sphere
	// of edge (0, 1). On-the-boundary means outside the open ball: keep.
	coords := []geometry.Point{
		{0, 0, 0}, {1, 0, 0}, {0.5, 0.5, 0},
	}
	conns := [][2]int{{0, 1}}

	retained := Filter(coords, conns, FilterOptions{})
	if len(retained) != 1 {
		t.Fatalf("boundary node must not reject the edge, got %d edges", len(retained))
	}
}

func TestStrictlyInsideRejected(t *testing.T) {
	coords := []geometry.Point{
		{0, 0, 0}, {1, 0, 0}, {0.5, 0.1, 0},
	}
	conns := [][2]int{{0, 1}}

	retained := Filter(coords, conns, FilterOptions{})
	if len(retained) != 0 {
		t.Fatalf("interior node must reject the edge, got %v", retained)
	}
}

func TestNodesNeverRemoved(t *testing.T) {
	// The rejected edge leaves node 2 isolated; it must still be present.
	coords := []geometry.Point{
		{0, 0, 0}, {1, 0, 0}, {0.5, 0.1, 0},
	}
	tess := tessellation.Tessellation{Coords: coords, Conns: [][2]int{{0, 1}}}

	net := Gabriel(tess, FilterOptions{}, "", "")
	if net.NodeCount() != 3 {
		t.Fatalf("node count must be invariant across filtering, got %d", net.NodeCount())
	}
	if net.EdgeCount() != 0 {
		t.Fatalf("expected no edges, got %d", net.EdgeCount())
	}
}

func TestSubsetAndStableOrder(t *testing.T) {
	points, err := geometry.Generate(100, []float64{1, 1, 0}, 11)
	if err != nil {
		t.Fatal(err)
	}
	tess, err := tessellation.Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}

	retained := Filter(tess.Coords, tess.Conns, FilterOptions{})
	if len(retained) > len(tess.Conns) {
		t.Fatalf("retained %d > candidates %d", len(retained), len(tess.Conns))
	}

	// Stable subsequence of the candidate order.
	i := 0
	for _, e := range retained {
		for i < len(tess.Conns) && tess.Conns[i] != e {
			i++
		}
		if i == len(tess.Conns) {
			t.Fatalf("edge %v not a subsequence member of the candidates", e)
		}
		i++
	}
}

func TestIdempotent(t *testing.T) {
	points, err := geometry.Generate(80, []float64{1, 1, 0}, 5)
	if err != nil {
		t.Fatal(err)
	}
	tess, err := tessellation.Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}

	once := Filter(tess.Coords, tess.Conns, FilterOptions{})
	twice := Filter(tess.Coords, once, FilterOptions{})
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d then %d edges", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("edge %d differs after second pass: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestSymmetricPredicate(t *testing.T) {
	points, err := geometry.Generate(40, []float64{1, 1, 0}, 9)
	if err != nil {
		t.Fatal(err)
	}
	tess, err := tessellation.Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}

	flipped := make([][2]int, len(tess.Conns))
	for i, e := range tess.Conns {
		flipped[i] = [2]int{e[1], e[0]}
	}

	a := Filter(tess.Coords, tess.Conns, FilterOptions{})
	b := Filter(tess.Coords, flipped, FilterOptions{})
	if len(a) != len(b) {
		t.Fatalf("predicate not symmetric: %d vs %d edges", len(a), len(b))
	}
	for i := range a {
		if a[i] != [2]int{b[i][1], b[i][0]} {
			t.Fatalf("edge %d decision differs under endpoint swap", i)
		}
	}
}

func TestRandomCube3D(t *testing.T) {
	points, err := geometry.Generate(50, []float64{1, 1, 1}, 42)
	if err != nil {
		t.Fatal(err)
	}
	tess, err := tessellation.Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}

	net := Gabriel(tess, FilterOptions{}, "", "")
	if net.EdgeCount() == 0 {
		t.Fatal("expected retained edges")
	}
	if net.EdgeCount() >= len(tess.Conns) {
		t.Fatalf("Gabriel edges (%d) must be strictly fewer than Delaunay edges (%d) for random 3D points",
			net.EdgeCount(), len(tess.Conns))
	}
	if err := net.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if net.NodeCount() != 50 {
		t.Fatalf("node count changed: %d", net.NodeCount())
	}
}

func TestLinearIndexAgrees(t *testing.T) {
	points, err := geometry.Generate(60, []float64{1, 1, 1}, 13)
	if err != nil {
		t.Fatal(err)
	}
	tess, err := tessellation.Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}

	kd := Filter(tess.Coords, tess.Conns, FilterOptions{Index: spatial.NewKDTree})
	lin := Filter(tess.Coords, tess.Conns, FilterOptions{Index: spatial.NewLinear})
	if len(kd) != len(lin) {
		t.Fatalf("index implementations disagree: %d vs %d edges", len(kd), len(lin))
	}
	for i := range kd {
		if kd[i] != lin[i] {
			t.Fatalf("edge %d differs between index implementations", i)
		}
	}
}

func TestSingleWorkerMatchesParallel(t *testing.T) {
	points, err := geometry.Generate(60, []float64{1, 1, 0}, 21)
	if err != nil {
		t.Fatal(err)
	}
	tess, err := tessellation.Delaunay{}.Tessellate(points)
	if err != nil {
		t.Fatal(err)
	}

	serial := Filter(tess.Coords, tess.Conns, FilterOptions{Workers: 1})
	parallel := Filter(tess.Coords, tess.Conns, FilterOptions{Workers: 8})
	if len(serial) != len(parallel) {
		t.Fatalf("worker count changed the result: %d vs %d edges", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("edge %d differs between serial and parallel runs", i)
		}
	}
}

func TestEmptyCandidates(t *testing.T) {
	coords := []geometry.Point{{0, 0, 0}, {1, 1, 1}}
	retained := Filter(coords, nil, FilterOptions{})
	if len(retained) != 0 {
		t.Fatalf("expected no edges, got %v", retained)
	}
}
