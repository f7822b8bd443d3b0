package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	placeerrors "github.com/symplace/symplace/pkg/errors"
	"github.com/symplace/symplace/pkg/floorplan"
	"github.com/symplace/symplace/pkg/pipeline"
	"github.com/symplace/symplace/pkg/store"
)

// placeRequest is the body of POST /v1/place.
type placeRequest struct {
	Netlist    string   `json:"netlist"`
	Groups     []string `json:"groups,omitempty"`
	Iterations int      `json:"iterations,omitempty"`
	Seed       uint64   `json:"seed,omitempty"`
	NoAnneal   bool     `json:"no_anneal,omitempty"`
	SVG        bool     `json:"svg,omitempty"`
}

// placeResponse is the body of a successful POST /v1/place.
type placeResponse struct {
	RunID       string              `json:"run_id"`
	NetlistHash string              `json:"netlist_hash"`
	Area        int                 `json:"area"`
	Placement   floorplan.Placement `json:"placement"`
	SVG         string              `json:"svg,omitempty"`
}

// errorResponse carries a structured error code and message.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest,
			placeerrors.New(placeerrors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}

	formats := []string{pipeline.FormatJSON}
	if req.SVG {
		formats = append(formats, pipeline.FormatSVG)
	}
	opts := pipeline.Options{
		Netlist:    req.Netlist,
		Groups:     req.Groups,
		Iterations: req.Iterations,
		Seed:       req.Seed,
		NoAnneal:   req.NoAnneal,
		Formats:    formats,
		Labels:     true,
		Logger:     s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if placeerrors.GetCode(err) == placeerrors.ErrCodeInvalidInput ||
			placeerrors.GetCode(err) == placeerrors.ErrCodeInvalidNetlist {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	resp := placeResponse{
		RunID:       result.RunID,
		NetlistHash: result.NetlistHash,
		Area:        result.Placement.Area(),
		Placement:   result.Placement,
		SVG:         string(result.Artifacts[pipeline.FormatSVG]),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound,
			placeerrors.New(placeerrors.ErrCodeNotFound, "run archive not configured"))
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound,
			placeerrors.New(placeerrors.ErrCodeNotFound, "run %s not found", id))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError,
			placeerrors.Wrap(placeerrors.ErrCodeInternal, err, "load run"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound,
			placeerrors.New(placeerrors.ErrCodeNotFound, "run archive not configured"))
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest,
				placeerrors.New(placeerrors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError,
			placeerrors.Wrap(placeerrors.ErrCodeInternal, err, "list runs"))
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	var resp errorResponse
	resp.Error.Code = string(placeerrors.GetCode(err))
	if resp.Error.Code == "" {
		resp.Error.Code = string(placeerrors.ErrCodeInternal)
	}
	resp.Error.Message = placeerrors.UserMessage(err)
	writeJSON(w, status, resp)
}
