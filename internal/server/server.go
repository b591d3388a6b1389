// Package server exposes the generation pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                        liveness probe
//	POST   /api/v1/networks                generate (and optionally persist)
//	GET    /api/v1/networks                list persisted snapshots
//	GET    /api/v1/networks/{id}           fetch a persisted snapshot
//	DELETE /api/v1/networks/{id}           remove a persisted snapshot
//	GET    /api/v1/networks/{id}/render    render a snapshot (dot, svg, png)
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/poregraph/poregraph/pkg/pipeline"
	"github.com/poregraph/poregraph/pkg/store"
)

// Server wires the pipeline runner and snapshot store behind HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. The store may be nil, which disables persistence:
// generation still works, but persist requests and snapshot routes return
// errors.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1/networks", func(r chi.Router) {
		r.Post("/", s.handleGenerate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/render", s.handleRender)
	})

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}
