// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// leagueSummary is the wire shape for GET /api/leagues.
type leagueSummary struct {
	LeagueID string  `json:"leagueId"`
	Name     string  `json:"name"`
	Cap      float64 `json:"cap"`
	Teams    int     `json:"teams"`
}

// teamTimeline carries one team's replayed budget line plus the roster
// state the chart needs for tooltips and elimination styling.
type teamTimeline struct {
	TeamID           string         `json:"teamId"`
	DisplayName      string         `json:"displayName"`
	AvatarRef        string         `json:"avatar,omitempty"`
	Initials         string         `json:"initials,omitempty"`
	CurrentValue     float64        `json:"currentValue"`
	Eliminated       bool           `json:"eliminated"`
	EliminatedPeriod *int           `json:"eliminatedPeriod,omitempty"`
	Points           model.Timeline `json:"points"`
}

// timelinesResponse is the wire shape for GET /api/leagues/{league}/timelines.
type timelinesResponse struct {
	LeagueID string         `json:"leagueId"`
	Name     string         `json:"name"`
	Cap      float64        `json:"cap"`
	Teams    []teamTimeline `json:"teams"`
}

// LeaguesHandler handles league listing and timeline reads.
type LeaguesHandler struct {
	deps Dependencies
}

// NewLeaguesHandler creates a new leagues handler.
func NewLeaguesHandler(deps Dependencies) *LeaguesHandler {
	return &LeaguesHandler{deps: deps}
}

// HandleListLeagues handles GET /api/leagues requests.
func (h *LeaguesHandler) HandleListLeagues(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_leagues"

	leagues := h.deps.Leagues(r.Context())
	out := make([]leagueSummary, 0, len(leagues))
	for _, lg := range leagues {
		roster, err := h.deps.Roster(r.Context(), lg.LeagueID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		out = append(out, leagueSummary{
			LeagueID: lg.LeagueID,
			Name:     lg.Name,
			Cap:      lg.Cap,
			Teams:    len(roster),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetTimelines handles GET /api/leagues/{league}/timelines requests.
// Timelines are replayed from the event log on every read; the log is the
// single source of truth.
func (h *LeaguesHandler) HandleGetTimelines(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_timelines"
	leagueID := mux.Vars(r)["league"]

	timelines, roster, league, err := h.deps.BuildTimelines(r.Context(), leagueID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := timelinesResponse{
		LeagueID: league.LeagueID,
		Name:     league.Name,
		Cap:      league.Cap,
		Teams:    make([]teamTimeline, 0, len(roster)),
	}
	for _, team := range roster {
		resp.Teams = append(resp.Teams, teamTimeline{
			TeamID:           team.TeamID,
			DisplayName:      team.DisplayName,
			AvatarRef:        team.AvatarRef,
			Initials:         team.Initials,
			CurrentValue:     team.CurrentValue,
			Eliminated:       team.Eliminated,
			EliminatedPeriod: team.EliminatedPeriod,
			Points:           timelines[team.TeamID],
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
