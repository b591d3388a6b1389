package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poregraph/poregraph/internal/server"
	"github.com/poregraph/poregraph/pkg/cache"
	"github.com/poregraph/poregraph/pkg/pipeline"
	"github.com/poregraph/poregraph/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redisURL string // Redis cache backend (empty = file cache)
	mongoURL string // MongoDB snapshot store (empty = in-memory)
	mongoDB  string // MongoDB database name
	noCache  bool   // disable result caching entirely
}

// serveCommand creates the serve command that exposes the pipeline as an
// HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation pipeline over HTTP",
		Long: `Serve starts an HTTP API around the generation pipeline.

Without flags it runs self-contained: results are cached on disk and
snapshots persist in memory for the lifetime of the process. For
multi-instance deployments point --redis-url at a shared cache and
--mongo-url at a durable snapshot store.`,
		Example: `  poregraph serve
  poregraph serve --addr :9000
  poregraph serve --redis-url redis://localhost:6379/0 --mongo-url mongodb://localhost:27017`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for the result cache")
	cmd.Flags().StringVar(&opts.mongoURL, "mongo-url", "", "MongoDB URI for the snapshot store")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	ch, err := c.serverCache(cmd, opts)
	if err != nil {
		return err
	}
	defer ch.Close()

	var st store.Store
	if opts.mongoURL != "" {
		mongoStore, err := store.NewMongoStore(ctx, opts.mongoURL, opts.mongoDB)
		if err != nil {
			return fmt.Errorf("connect snapshot store: %w", err)
		}
		st = mongoStore
		c.Logger.Info("snapshot store", "backend", "mongodb")
	} else {
		st = store.NewMemoryStore()
		c.Logger.Info("snapshot store", "backend", "memory")
	}
	defer st.Close(ctx)

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	srv := server.New(runner, st, c.Logger)
	return srv.ListenAndServe(opts.addr)
}

// serverCache selects the cache backend for server mode.
func (c *CLI) serverCache(cmd *cobra.Command, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		ch, err := cache.NewRedisCache(cmd.Context(), opts.redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("result cache", "backend", "redis")
		return ch, nil
	}
	ch, err := newCache(false)
	if err != nil {
		return nil, fmt.Errorf("init file cache: %w", err)
	}
	c.Logger.Info("result cache", "backend", "file")
	return ch, nil
}
