// Package pkg provides the core libraries for poregraph network generation.
//
// # Overview
//
// Poregraph builds spatial networks from point sets using the Gabriel
// criterion: starting from a Delaunay tessellation, it keeps exactly the
// edges whose diametral sphere contains no other node. The pkg directory
// is organized into three main areas:
//
//  1. Domain logic - geometry, tessellation, spatial indexing, filtering
//  2. Infrastructure - caching, persistence, observability
//  3. Orchestration - the pipeline that ties the stages together
//
// # Architecture
//
// The typical data flow through poregraph:
//
//	Point set (explicit rows or generated in a domain)
//	         ↓
//	    [geometry] package (parse, validate, generate)
//	         ↓
//	    [tessellation] package (Delaunay candidate edges)
//	         ↓
//	    [network] package (Gabriel filter, via [spatial] index)
//	         ↓
//	    node/edge document, diagrams via [render]
//
// # Quick Start
//
// Generate a network and serialize it:
//
//	import (
//	    "context"
//	    "github.com/poregraph/poregraph/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Count: 500,
//	    Shape: []float64{1, 1, 1},
//	})
//	if err != nil {
//	    return err
//	}
//	data, _ := network.Marshal(result.Network)
//
// # Main Packages
//
// Domain logic:
//   - [geometry]: points, vector operations, domain shapes, point generation
//   - [tessellation]: Delaunay candidate edge sets (2D and 3D)
//   - [spatial]: nearest-neighbor indexes (kd-tree, brute force)
//   - [network]: the network record, Gabriel filter, serialization
//   - [render]: DOT generation and Graphviz rendering
//
// Infrastructure:
//   - [cache]: content-addressed result caching (file, Redis, null)
//   - [store]: durable snapshot persistence (memory, MongoDB)
//   - [errors]: structured error codes shared by CLI and API
//   - [observability]: pluggable generation and cache hooks
//   - [buildinfo]: ldflags-injected version information
//
// Orchestration:
//   - [pipeline]: options, stage execution, and the caching Runner
//
// [geometry]: github.com/poregraph/poregraph/pkg/geometry
// [tessellation]: github.com/poregraph/poregraph/pkg/tessellation
// [spatial]: github.com/poregraph/poregraph/pkg/spatial
// [network]: github.com/poregraph/poregraph/pkg/network
// [render]: github.com/poregraph/poregraph/pkg/render
// [cache]: github.com/poregraph/poregraph/pkg/cache
// [store]: github.com/poregraph/poregraph/pkg/store
// [errors]: github.com/poregraph/poregraph/pkg/errors
// [observability]: github.com/poregraph/poregraph/pkg/observability
// [buildinfo]: github.com/poregraph/poregraph/pkg/buildinfo
// [pipeline]: github.com/poregraph/poregraph/pkg/pipeline
package pkg
