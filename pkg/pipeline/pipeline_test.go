package pipeline

import (
	"context"
	"testing"

	"github.com/poregraph/poregraph/pkg/cache"
	perrors "github.com/poregraph/poregraph/pkg/errors"
	"github.com/poregraph/poregraph/pkg/geometry"
	"github.com/poregraph/poregraph/pkg/tessellation"
)

// unitSquare has four cocircular corners. Delaunay yields the four sides
// plus one diagonal, and the diagonal sits exactly on the predicate
// boundary, so the default tolerance keeps all five edges.
var unitSquare = [][]float64{
	{0, 0},
	{1, 0},
	{0, 1},
	{1, 1},
}

func TestValidateRequiresSource(t *testing.T) {
	var opts Options
	err := opts.ValidateAndSetDefaults()
	if err == nil {
		t.Fatal("expected error for empty options")
	}
	if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("code = %s, want %s", perrors.GetCode(err), perrors.ErrCodeInvalidConfig)
	}
}

func TestValidateRejectsMultipleSources(t *testing.T) {
	opts := Options{Points: unitSquare, Count: 10, Shape: []float64{1, 1}}
	if err := opts.ValidateAndSetDefaults(); !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestValidateRequiresShapeWithCount(t *testing.T) {
	opts := Options{Count: 10}
	if err := opts.ValidateAndSetDefaults(); !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestValidateRejectsNegativeEpsilon(t *testing.T) {
	opts := Options{Count: 10, Shape: []float64{1, 1}, Epsilon: -1}
	if err := opts.ValidateAndSetDefaults(); !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestValidateSetsDefaults(t *testing.T) {
	opts := Options{Count: 10, Shape: []float64{1, 1}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.Epsilon != DefaultEpsilon {
		t.Errorf("Epsilon = %v, want %v", opts.Epsilon, DefaultEpsilon)
	}
	if opts.NodeLabel != "node" || opts.EdgeLabel != "edge" {
		t.Errorf("labels = %q/%q", opts.NodeLabel, opts.EdgeLabel)
	}
	if opts.Provider == nil || opts.Logger == nil {
		t.Error("Provider and Logger should be defaulted")
	}
}

func TestGenerateFromExplicitPoints(t *testing.T) {
	net, err := Generate(context.Background(), Options{Points: unitSquare})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if net.NodeCount() != 4 {
		t.Errorf("nodes = %d, want 4", net.NodeCount())
	}
	if net.EdgeCount() != 5 {
		t.Errorf("edges = %d, want 5", net.EdgeCount())
	}
}

func TestGenerateFromCount(t *testing.T) {
	net, err := Generate(context.Background(), Options{
		Count: 50,
		Shape: []float64{1, 1, 1},
		Seed:  7,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if net.NodeCount() != 50 {
		t.Errorf("nodes = %d, want 50", net.NodeCount())
	}
	if net.EdgeCount() == 0 {
		t.Error("expected some retained edges")
	}
	if err := net.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{Count: 30, Shape: []float64{2, 1}, Seed: 99}
	a, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Generate(context.Background(), Options{Count: 30, Shape: []float64{2, 1}, Seed: 99})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
		t.Errorf("runs differ: %d/%d vs %d/%d nodes/edges",
			a.NodeCount(), a.EdgeCount(), b.NodeCount(), b.EdgeCount())
	}
	for i := range a.Conns {
		if a.Conns[i] != b.Conns[i] {
			t.Fatalf("edge %d differs: %v vs %v", i, a.Conns[i], b.Conns[i])
		}
	}
}

func TestGenerateFromPrebuiltCandidates(t *testing.T) {
	// A right triangle: the apex lies inside the hypotenuse's diametral
	// circle, so only the two legs survive.
	candidates := &tessellation.Tessellation{
		Coords: []geometry.Point{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Conns:  [][2]int{{0, 1}, {0, 2}, {1, 2}},
	}
	net, err := Generate(context.Background(), Options{Candidates: candidates})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if net.EdgeCount() != 2 {
		t.Errorf("edges = %d, want 2", net.EdgeCount())
	}
}

func TestGenerateRejectsInvalidCandidates(t *testing.T) {
	candidates := &tessellation.Tessellation{
		Coords: []geometry.Point{{0, 0, 0}, {1, 0, 0}},
		Conns:  [][2]int{{0, 5}},
	}
	_, err := Generate(context.Background(), Options{Candidates: candidates})
	if !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestGenerateErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code perrors.Code
	}{
		{
			name: "too few points",
			opts: Options{Points: [][]float64{{0, 0}, {1, 1}}},
			code: perrors.ErrCodeInsufficientPoints,
		},
		{
			name: "collinear points",
			opts: Options{Points: [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
			code: perrors.ErrCodeDegenerateGeometry,
		},
		{
			name: "ragged rows",
			opts: Options{Points: [][]float64{{0, 0}, {1, 0, 0}}},
			code: perrors.ErrCodeInvalidConfig,
		},
		{
			name: "point off collapsed axis",
			opts: Options{
				Points: [][]float64{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
				Shape:  []float64{1, 1, 0},
			},
			code: perrors.ErrCodeInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !perrors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (err: %v)", perrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestRunnerCacheHit(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer fc.Close()

	runner := NewRunner(fc, nil, nil)
	opts := Options{Count: 40, Shape: []float64{1, 1}, Seed: 3}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.NetworkHit {
		t.Error("first run should not hit the cache")
	}
	if first.NetworkHash == "" {
		t.Error("expected a network hash")
	}

	second, err := runner.Execute(ctx, Options{Count: 40, Shape: []float64{1, 1}, Seed: 3})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.NetworkHit {
		t.Error("second run should hit the cache")
	}
	if second.NetworkHash != first.NetworkHash {
		t.Errorf("hash mismatch: %s vs %s", second.NetworkHash, first.NetworkHash)
	}
	if second.Network.EdgeCount() != first.Network.EdgeCount() {
		t.Errorf("edge count mismatch: %d vs %d",
			second.Network.EdgeCount(), first.Network.EdgeCount())
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer fc.Close()

	runner := NewRunner(fc, nil, nil)
	opts := Options{Count: 40, Shape: []float64{1, 1}, Seed: 3}
	if _, err := runner.Execute(ctx, opts); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	refreshed, err := runner.Execute(ctx, Options{Count: 40, Shape: []float64{1, 1}, Seed: 3, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if refreshed.CacheInfo.NetworkHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestRunnerDifferentEpsilonDifferentKey(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer fc.Close()

	runner := NewRunner(fc, nil, nil)
	if _, err := runner.Execute(ctx, Options{Count: 40, Shape: []float64{1, 1}, Epsilon: 1e-3}); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	other, err := runner.Execute(ctx, Options{Count: 40, Shape: []float64{1, 1}, Epsilon: 1e-6})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if other.CacheInfo.NetworkHit {
		t.Error("a different epsilon must not share a cache entry")
	}
}

func TestRunnerNilCacheDisablesCaching(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	opts := Options{Count: 20, Shape: []float64{1, 1}}

	if _, err := runner.Execute(ctx, opts); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := runner.Execute(ctx, Options{Count: 20, Shape: []float64{1, 1}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if second.CacheInfo.NetworkHit {
		t.Error("null cache should never hit")
	}
}
