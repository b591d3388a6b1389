package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/poregraph/poregraph/pkg/geometry"
	"github.com/poregraph/poregraph/pkg/network"
	"github.com/poregraph/poregraph/pkg/observability"

	perrors "github.com/poregraph/poregraph/pkg/errors"
	"github.com/poregraph/poregraph/pkg/tessellation"
)

// Generate runs the pipeline without caching and returns the network only.
// Most callers should use Runner.Execute instead, which adds caching and
// returns statistics.
func Generate(ctx context.Context, opts Options) (*network.Network, error) {
	result, err := run(ctx, &opts)
	if err != nil {
		return nil, err
	}
	return result.Network, nil
}

// run executes the resolve, tessellate, and filter stages.
func run(ctx context.Context, opts *Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	candidates, tessTime, err := resolveCandidates(ctx, opts)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("filtering candidate edges",
		"candidates", len(candidates.Conns), "epsilon", opts.Epsilon)
	observability.Generation().OnFilterStart(ctx, len(candidates.Conns))

	filterStart := time.Now()
	net := network.Gabriel(*candidates, opts.filterOptions(), opts.NodeLabel, opts.EdgeLabel)
	filterTime := time.Since(filterStart)

	observability.Generation().OnFilterComplete(ctx, net.EdgeCount(), filterTime)
	opts.Logger.Debug("filter complete",
		"retained", net.EdgeCount(), "duration", filterTime)

	if err := net.Validate(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "generated network failed validation")
	}

	return &Result{
		Network: net,
		Stats: Stats{
			Nodes:          net.NodeCount(),
			CandidateEdges: len(candidates.Conns),
			RetainedEdges:  net.EdgeCount(),
			TessellateTime: tessTime,
			FilterTime:     filterTime,
		},
	}, nil
}

// resolveCandidates produces the candidate edge set, tessellating the
// resolved points unless a pre-built tessellation was supplied.
func resolveCandidates(ctx context.Context, opts *Options) (*tessellation.Tessellation, time.Duration, error) {
	if opts.Candidates != nil {
		for i, e := range opts.Candidates.Conns {
			if e[0] < 0 || e[1] < 0 || e[0] >= len(opts.Candidates.Coords) || e[1] >= len(opts.Candidates.Coords) {
				return nil, 0, perrors.New(perrors.ErrCodeInvalidFormat,
					"candidate edge %d = %v references a node outside the %d supplied coordinates",
					i, e, len(opts.Candidates.Coords))
			}
		}
		opts.Logger.Debug("using pre-built tessellation",
			"nodes", len(opts.Candidates.Coords), "candidates", len(opts.Candidates.Conns))
		return opts.Candidates, 0, nil
	}

	points, err := resolvePoints(opts)
	if err != nil {
		return nil, 0, err
	}

	opts.Logger.Debug("tessellating", "points", len(points))
	observability.Generation().OnTessellateStart(ctx, len(points))

	start := time.Now()
	candidates, err := opts.Provider.Tessellate(points)
	elapsed := time.Since(start)

	observability.Generation().OnTessellateComplete(ctx, len(candidates.Conns), elapsed, err)
	if err != nil {
		return nil, 0, wrapGeometryError(err, "tessellate %d points", len(points))
	}
	opts.Logger.Debug("tessellation complete", "candidates", len(candidates.Conns), "duration", elapsed)

	return &candidates, elapsed, nil
}

// resolvePoints obtains the input point set from explicit coordinates or by
// generating them inside the domain shape.
func resolvePoints(opts *Options) ([]geometry.Point, error) {
	if len(opts.Points) > 0 {
		points, err := geometry.ParsePoints(opts.Points)
		if err != nil {
			return nil, wrapGeometryError(err, "parse points")
		}
		if err := geometry.ValidateShape(points, opts.Shape); err != nil {
			return nil, wrapGeometryError(err, "validate points against shape")
		}
		return points, nil
	}

	points, err := geometry.Generate(opts.Count, opts.Shape, opts.Seed)
	if err != nil {
		return nil, wrapGeometryError(err, "generate %d points", opts.Count)
	}
	opts.Logger.Debug("generated points", "count", len(points), "seed", opts.Seed)
	return points, nil
}

// wrapGeometryError attaches the matching error code to geometry and
// tessellation failures while preserving the sentinel chain.
func wrapGeometryError(err error, format string, args ...any) error {
	code := perrors.ErrCodeInternal
	switch {
	case errors.Is(err, tessellation.ErrInsufficientPoints):
		code = perrors.ErrCodeInsufficientPoints
	case errors.Is(err, tessellation.ErrDegenerateGeometry):
		code = perrors.ErrCodeDegenerateGeometry
	case errors.Is(err, geometry.ErrNoPoints),
		errors.Is(err, geometry.ErrInvalidDimension),
		errors.Is(err, geometry.ErrDimensionMismatch):
		code = perrors.ErrCodeInvalidConfig
	}
	return perrors.Wrap(code, err, format, args...)
}
