// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/michael-fp/fp-chopped/internal/adapters/repository"
	"github.com/michael-fp/fp-chopped/internal/anim"
	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/internal/render"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Enqueue pushes a bid event for async ingestion.
	Enqueue(ctx context.Context, e model.BidEvent) error

	// Read operations expose the season dataset and its replay.
	Leagues(ctx context.Context) []model.League
	League(ctx context.Context, leagueID string) (model.League, error)
	Roster(ctx context.Context, leagueID string) ([]model.Team, error)
	BuildTimelines(ctx context.Context, leagueID string) (map[string]model.Timeline, []model.Team, model.League, error)
	Snapshot(ctx context.Context, leagueID string, req anim.SnapshotRequest) (render.Frame, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	eventsHandler    *EventsHandler
	leaguesHandler   *LeaguesHandler
	frameHandler     *FrameHandler
	chartHandler     *ChartHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		eventsHandler:    NewEventsHandler(deps),
		leaguesHandler:   NewLeaguesHandler(deps),
		frameHandler:     NewFrameHandler(deps),
		chartHandler:     NewChartHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard).Methods(http.MethodGet)

	r.HandleFunc("/api/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events")).Methods(http.MethodPost)
	r.HandleFunc("/api/leagues", MetricsMiddleware(s.leaguesHandler.HandleListLeagues, "leagues")).Methods(http.MethodGet)
	r.HandleFunc("/api/leagues/{league}/timelines", MetricsMiddleware(s.leaguesHandler.HandleGetTimelines, "timelines")).Methods(http.MethodGet)
	r.HandleFunc("/api/leagues/{league}/frame", MetricsMiddleware(s.frameHandler.HandleGetFrame, "frame")).Methods(http.MethodGet)
	r.HandleFunc("/api/leagues/{league}/chart.svg", MetricsMiddleware(s.chartHandler.HandleGetChart, "chart_svg")).Methods(http.MethodGet)
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates the store's not-found condition to a 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrLeagueNotFound)
}
