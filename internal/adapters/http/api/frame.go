// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/michael-fp/fp-chopped/internal/anim"
	"github.com/michael-fp/fp-chopped/internal/domain/view"
)

// FrameHandler serves one-shot composed frames.
type FrameHandler struct {
	deps Dependencies
}

// NewFrameHandler creates a new frame handler.
func NewFrameHandler(deps Dependencies) *FrameHandler {
	return &FrameHandler{deps: deps}
}

// HandleGetFrame handles GET /api/leagues/{league}/frame requests.
// Query parameters: progress (0..1, default 1), scope (all|league),
// status (all|remaining|chopped), focus (team id).
func (h *FrameHandler) HandleGetFrame(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_frame"
	leagueID := mux.Vars(r)["league"]

	req, err := snapshotRequestFromQuery(r, leagueID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	frame, err := h.deps.Snapshot(r.Context(), leagueID, req)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

// snapshotRequestFromQuery parses the shared filter query parameters.
func snapshotRequestFromQuery(r *http.Request, leagueID string) (anim.SnapshotRequest, error) {
	q := r.URL.Query()

	req := anim.SnapshotRequest{
		Scope:    view.ScopeLeague,
		LeagueID: leagueID,
		Status:   view.StatusAll,
		Focus:    q.Get("focus"),
		Progress: 1,
	}

	if raw := q.Get("progress"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.New("invalid progress; must be a number in [0,1]")
		}
		req.Progress = p
	}

	switch q.Get("scope") {
	case "", string(view.ScopeLeague):
	case string(view.ScopeAll):
		req.Scope = view.ScopeAll
	default:
		return req, errors.New("invalid scope; must be all or league")
	}

	switch q.Get("status") {
	case "", string(view.StatusAll):
	case string(view.StatusRemaining):
		req.Status = view.StatusRemaining
	case string(view.StatusChopped):
		req.Status = view.StatusChopped
	default:
		return req, errors.New("invalid status; must be all, remaining, or chopped")
	}

	return req, nil
}
