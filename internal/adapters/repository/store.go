// Package repository defines the season store interface and errors.
package repository

import (
	"context"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// Store holds the loaded season dataset: leagues, rosters, and the
// append-only bid event log the reconstructor replays from.
type Store interface {
	// PutLeague creates or replaces a league.
	PutLeague(ctx context.Context, league model.League)

	// PutTeam creates or replaces a roster entry. Replacement keeps the
	// team's original roster position so display tie-breaks stay stable.
	PutTeam(ctx context.Context, team model.Team) error

	// AppendEvent appends one bid event to its league's log.
	AppendEvent(ctx context.Context, e model.BidEvent) error

	// League returns one league by ID.
	League(ctx context.Context, leagueID string) (model.League, error)

	// Leagues returns every league in insertion order.
	Leagues(ctx context.Context) []model.League

	// Roster returns a league's teams in insertion order.
	Roster(ctx context.Context, leagueID string) ([]model.Team, error)

	// Events returns a copy of a league's event log in ingest order.
	Events(ctx context.Context, leagueID string) ([]model.BidEvent, error)

	// EventCount returns the total number of events across all leagues.
	EventCount(ctx context.Context) int
}
