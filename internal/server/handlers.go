package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	perrors "github.com/poregraph/poregraph/pkg/errors"
	"github.com/poregraph/poregraph/pkg/network"
	"github.com/poregraph/poregraph/pkg/pipeline"
	"github.com/poregraph/poregraph/pkg/render"
	"github.com/poregraph/poregraph/pkg/store"
)

// generateRequest is the POST /networks body: pipeline options plus
// persistence controls.
type generateRequest struct {
	pipeline.Options
	Persist bool   `json:"persist,omitempty"`
	Name    string `json:"name,omitempty"`
}

// generateResponse reports the generated network and run metadata.
type generateResponse struct {
	ID       string           `json:"id,omitempty"`
	Network  *network.Network `json:"network"`
	Stats    statsPayload     `json:"stats"`
	CacheHit bool             `json:"cache_hit"`
}

type statsPayload struct {
	Nodes          int     `json:"nodes"`
	CandidateEdges int     `json:"candidate_edges"`
	RetainedEdges  int     `json:"retained_edges"`
	TessellateMS   float64 `json:"tessellate_ms"`
	FilterMS       float64 `json:"filter_ms"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := generateResponse{
		Network: result.Network,
		Stats: statsPayload{
			Nodes:          result.Stats.Nodes,
			CandidateEdges: result.Stats.CandidateEdges,
			RetainedEdges:  result.Stats.RetainedEdges,
			TessellateMS:   float64(result.Stats.TessellateTime) / float64(time.Millisecond),
			FilterMS:       float64(result.Stats.FilterTime) / float64(time.Millisecond),
		},
		CacheHit: result.CacheInfo.NetworkHit,
	}

	if req.Persist {
		if s.store == nil {
			s.writeError(w, r, perrors.New(perrors.ErrCodeUnsupported, "persistence is not configured"))
			return
		}
		id, err := s.store.Save(r.Context(), &store.Snapshot{
			Name:    req.Name,
			Network: result.Network,
			Epsilon: req.Epsilon,
			Seed:    req.Seed,
		})
		if err != nil {
			s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "persist snapshot"))
			return
		}
		resp.ID = id
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, perrors.New(perrors.ErrCodeUnsupported, "persistence is not configured"))
		return
	}

	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			s.writeError(w, r, perrors.New(perrors.ErrCodeInvalidFormat, "invalid limit %q", q))
			return
		}
		limit = n
	}

	snaps, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "list snapshots"))
		return
	}
	if snaps == nil {
		snaps = []*store.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.fetchSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, perrors.New(perrors.ErrCodeUnsupported, "persistence is not configured"))
		return
	}

	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeNotFound, err, "snapshot"))
		return
	}
	if err != nil {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "delete snapshot"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.fetchSnapshot(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}

	dot := render.ToDOT(snap.Network, render.Options{})
	switch format {
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))
	case "svg":
		svg, err := render.SVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "render svg"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	case "png":
		png, err := render.PNG(r.Context(), dot)
		if err != nil {
			s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "render png"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	default:
		s.writeError(w, r, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q", format))
	}
}

// fetchSnapshot resolves the {id} route parameter against the store,
// writing the error response itself on failure.
func (s *Server) fetchSnapshot(w http.ResponseWriter, r *http.Request) (*store.Snapshot, bool) {
	if s.store == nil {
		s.writeError(w, r, perrors.New(perrors.ErrCodeUnsupported, "persistence is not configured"))
		return nil, false
	}

	id := chi.URLParam(r, "id")
	snap, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeNotFound, err, "snapshot %s", id))
		return nil, false
	}
	if err != nil {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "get snapshot"))
		return nil, false
	}
	return snap, true
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := perrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case perrors.ErrCodeInvalidConfig, perrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case perrors.ErrCodeInsufficientPoints, perrors.ErrCodeDegenerateGeometry:
		status = http.StatusUnprocessableEntity
	case perrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case perrors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	case "":
		code = perrors.ErrCodeInternal
	}

	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}

	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: perrors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
