// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/michael-fp/fp-chopped/internal/app"
	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// eventRequest is the wire shape for POST /api/events.
type eventRequest struct {
	EventID  string  `json:"event_id,omitempty"`
	LeagueID string  `json:"league_id"`
	TeamID   string  `json:"team_id"`
	Period   int     `json:"period"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	Type     string  `json:"type"`
	TS       int64   `json:"ts"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.LeagueID) == "":
		return errors.New("missing league_id")
	case strings.TrimSpace(e.TeamID) == "":
		return errors.New("missing team_id")
	case e.Period < 1:
		return errors.New("period must be >= 1")
	case e.TS <= 0:
		return errors.New("missing ts")
	}
	return nil
}

// EventsHandler handles event ingestion requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvent handles POST /api/events requests. Acceptance means the
// event entered the ingest queue; dedupe and commit happen asynchronously.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	err := h.deps.Enqueue(r.Context(), model.BidEvent{
		EventID:  req.EventID,
		LeagueID: req.LeagueID,
		TeamID:   req.TeamID,
		Period:   req.Period,
		Amount:   req.Amount,
		Status:   req.Status,
		Type:     req.Type,
		TS:       req.TS,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
	case errors.Is(err, service.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
