// Package pipeline provides the core generation pipeline for poregraph.
//
// This package implements the complete points → tessellate → filter →
// assemble pipeline used by the CLI and the HTTP API. Centralizing it
// keeps behavior consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: obtain the point set (explicit coordinates, generated from
//     a count and domain shape, or a pre-built candidate tessellation)
//  2. Tessellate: compute the Delaunay candidate edge set
//  3. Filter: reduce the candidates to the Gabriel subset and assemble
//     the network record
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Count: 500,
//	    Shape: []float64{1, 1, 1},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	net := result.Network
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/poregraph/poregraph/pkg/errors"
	"github.com/poregraph/poregraph/pkg/network"
	"github.com/poregraph/poregraph/pkg/spatial"
	"github.com/poregraph/poregraph/pkg/tessellation"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducible point
	// generation.
	DefaultSeed = uint64(42)

	// DefaultEpsilon is the default Gabriel predicate tolerance.
	DefaultEpsilon = network.DefaultEpsilon
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Point source (exactly one of Points, Count, or Candidates).
	Points [][]float64 `json:"points,omitempty"` // explicit coordinates, 2 or 3 wide
	Count  int         `json:"count,omitempty"`  // number of points to generate
	Shape  []float64   `json:"shape,omitempty"`  // domain extent; 0 collapses an axis
	Seed   uint64      `json:"seed,omitempty"`   // point generation seed

	// Candidates supplies a pre-built tessellation, skipping the point
	// source and tessellation stages entirely.
	Candidates *tessellation.Tessellation `json:"candidates,omitempty"`

	// Filter options
	Epsilon float64 `json:"epsilon,omitempty"` // Gabriel tolerance, default 0.001
	Workers int     `json:"workers,omitempty"` // predicate parallelism

	// Output labels (serialization only)
	NodeLabel string `json:"node_label,omitempty"`
	EdgeLabel string `json:"edge_label,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger           `json:"-"`
	Provider tessellation.Provider `json:"-"` // nil selects tessellation.Delaunay
	Index    spatial.Builder       `json:"-"` // nil selects spatial.NewKDTree

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network is the generated Gabriel network.
	Network *network.Network

	// NetworkHash is the content hash of the serialized network.
	NetworkHash string

	// Stats contains timing and size information. Timing fields are zero
	// when the network came from cache.
	Stats Stats

	// CacheInfo tracks whether the run hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes          int
	CandidateEdges int
	RetainedEdges  int
	TessellateTime time.Duration
	FilterTime     time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	NetworkHit bool // Whether the network came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	sources := 0
	if len(o.Points) > 0 {
		sources++
	}
	if o.Count > 0 {
		sources++
	}
	if o.Candidates != nil {
		sources++
	}
	switch {
	case sources == 0:
		return perrors.New(perrors.ErrCodeInvalidConfig,
			"points, a count with a domain shape, or a pre-built tessellation is required")
	case sources > 1:
		return perrors.New(perrors.ErrCodeInvalidConfig,
			"points, count, and candidates are mutually exclusive")
	}
	if o.Count > 0 && len(o.Shape) == 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "generating %d points requires a domain shape", o.Count)
	}
	if o.Epsilon < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "epsilon must be non-negative, got %v", o.Epsilon)
	}

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Epsilon == 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.NodeLabel == "" {
		o.NodeLabel = network.DefaultNodeLabel
	}
	if o.EdgeLabel == "" {
		o.EdgeLabel = network.DefaultEdgeLabel
	}
	if o.Provider == nil {
		o.Provider = tessellation.Delaunay{}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// filterOptions builds the Gabriel filter configuration.
func (o *Options) filterOptions() network.FilterOptions {
	return network.FilterOptions{
		Epsilon: o.Epsilon,
		Workers: o.Workers,
		Index:   o.Index,
	}
}
