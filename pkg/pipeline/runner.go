package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"

	"github.com/poregraph/poregraph/pkg/cache"
	perrors "github.com/poregraph/poregraph/pkg/errors"
	"github.com/poregraph/poregraph/pkg/network"
	"github.com/poregraph/poregraph/pkg/observability"
	"github.com/poregraph/poregraph/pkg/tessellation"
)

// Runner executes the pipeline with content-addressed caching. Generation
// is a pure function of its inputs, so two runs with the same inputs and
// options always produce the same network and can share a cache entry.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer, and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{cache: c, keyer: keyer, logger: logger}
}

// Execute runs the pipeline, consulting the cache first unless opts.Refresh
// is set. Cache failures are logged and degrade to a fresh run, never fail
// the request.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	key, err := r.networkKey(opts)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if result, ok := r.lookup(ctx, key, opts); ok {
			return result, nil
		}
	}

	result, err := run(ctx, &opts)
	if err != nil {
		return nil, err
	}

	data, err := network.Marshal(result.Network)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "serialize network")
	}
	result.NetworkHash = cache.Hash(data)

	if err := r.cache.Set(ctx, key, data, cache.TTLNetwork); err != nil {
		r.logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "network", len(data))
	}

	return result, nil
}

// lookup tries to satisfy the run from cache. Timing statistics are not
// stored, so a cached result carries zero durations and no candidate count.
func (r *Runner) lookup(ctx context.Context, key string, opts Options) (*Result, bool) {
	data, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "network")
		return nil, false
	}

	net, err := network.Read(bytes.NewReader(data))
	if err != nil {
		r.logger.Warn("discarding corrupt cache entry", "key", key, "err", err)
		_ = r.cache.Delete(ctx, key)
		return nil, false
	}

	observability.Cache().OnCacheHit(ctx, "network")
	opts.Logger.Debug("network from cache", "key", key, "nodes", net.NodeCount(), "edges", net.EdgeCount())

	return &Result{
		Network:     net,
		NetworkHash: cache.Hash(data),
		Stats: Stats{
			Nodes:         net.NodeCount(),
			RetainedEdges: net.EdgeCount(),
		},
		CacheInfo: CacheInfo{NetworkHit: true},
	}, true
}

// networkKey derives the cache key from the input source and the
// generation options that affect the output.
func (r *Runner) networkKey(opts Options) (string, error) {
	input := struct {
		Points     [][]float64                `json:"points,omitempty"`
		Count      int                        `json:"count,omitempty"`
		Shape      []float64                  `json:"shape,omitempty"`
		Seed       uint64                     `json:"seed,omitempty"`
		Candidates *tessellation.Tessellation `json:"candidates,omitempty"`
	}{opts.Points, opts.Count, opts.Shape, opts.Seed, opts.Candidates}

	raw, err := json.Marshal(input)
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInternal, err, "hash pipeline input")
	}

	return r.keyer.NetworkKey(cache.Hash(raw), cache.NetworkKeyOpts{
		Epsilon:   opts.Epsilon,
		NodeLabel: opts.NodeLabel,
		EdgeLabel: opts.EdgeLabel,
	}), nil
}
