// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/michael-fp/fp-chopped/internal/adapters/svg"
)

// ChartHandler serves static SVG exports of the replay chart.
type ChartHandler struct {
	deps    Dependencies
	encoder *svg.Encoder
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies) *ChartHandler {
	return &ChartHandler{
		deps:    deps,
		encoder: svg.NewEncoder(),
	}
}

// HandleGetChart handles GET /api/leagues/{league}/chart.svg requests.
// It accepts the same query parameters as the frame endpoint and flattens
// the composed frame into a standalone SVG document.
func (h *ChartHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
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

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.encoder.Encode(frame)))
}
