// Package repository defines the season store interface and errors.
package repository

import (
	"context"
	"sync"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// In-memory Store implementation.
//
// Reads hand out copies, never internal slices: the reconstructor and the
// view layer depend on the log being immutable under their feet. Insertion
// order is preserved for both leagues and rosters because downstream
// tie-breaking and color assignment are defined in terms of it.

const defaultEventCapacity = 1024

// SeasonStore implements Store with plain maps guarded by one RWMutex.
// Write traffic is ingest-only and modest; reads dominate.
type SeasonStore struct {
	mu sync.RWMutex

	leagues     map[string]model.League
	leagueOrder []string

	rosters map[string][]model.Team
	events  map[string][]model.BidEvent

	eventCapacity int
}

// NewSeasonStore creates an empty store with configuration options.
func NewSeasonStore(opts ...Option) *SeasonStore {
	s := &SeasonStore{
		leagues:       make(map[string]model.League),
		rosters:       make(map[string][]model.Team),
		events:        make(map[string][]model.BidEvent),
		eventCapacity: defaultEventCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutLeague creates or replaces a league.
func (s *SeasonStore) PutLeague(_ context.Context, league model.League) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[league.LeagueID]; !ok {
		s.leagueOrder = append(s.leagueOrder, league.LeagueID)
	}
	s.leagues[league.LeagueID] = league
}

// PutTeam creates or replaces a roster entry in place.
func (s *SeasonStore) PutTeam(_ context.Context, team model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[team.LeagueID]; !ok {
		return ErrLeagueNotFound
	}
	roster := s.rosters[team.LeagueID]
	for i, existing := range roster {
		if existing.TeamID == team.TeamID {
			roster[i] = team
			return nil
		}
	}
	s.rosters[team.LeagueID] = append(roster, team)
	return nil
}

// AppendEvent appends one event to its league's log. Events referencing
// teams missing from the roster are still stored; the reconstructor drops
// them at replay time.
func (s *SeasonStore) AppendEvent(_ context.Context, e model.BidEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[e.LeagueID]; !ok {
		return ErrLeagueNotFound
	}
	log, ok := s.events[e.LeagueID]
	if !ok {
		log = make([]model.BidEvent, 0, s.eventCapacity)
	}
	s.events[e.LeagueID] = append(log, e)
	return nil
}

// League returns one league by ID.
func (s *SeasonStore) League(_ context.Context, leagueID string) (model.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	league, ok := s.leagues[leagueID]
	if !ok {
		return model.League{}, ErrLeagueNotFound
	}
	return league, nil
}

// Leagues returns every league in insertion order.
func (s *SeasonStore) Leagues(_ context.Context) []model.League {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.League, 0, len(s.leagueOrder))
	for _, id := range s.leagueOrder {
		out = append(out, s.leagues[id])
	}
	return out
}

// Roster returns a copy of a league's teams in insertion order.
func (s *SeasonStore) Roster(_ context.Context, leagueID string) ([]model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.leagues[leagueID]; !ok {
		return nil, ErrLeagueNotFound
	}
	roster := s.rosters[leagueID]
	out := make([]model.Team, len(roster))
	copy(out, roster)
	return out, nil
}

// Events returns a copy of a league's event log in ingest order.
func (s *SeasonStore) Events(_ context.Context, leagueID string) ([]model.BidEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.leagues[leagueID]; !ok {
		return nil, ErrLeagueNotFound
	}
	log := s.events[leagueID]
	out := make([]model.BidEvent, len(log))
	copy(out, log)
	return out, nil
}

// EventCount returns the total number of stored events.
func (s *SeasonStore) EventCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, log := range s.events {
		n += len(log)
	}
	return n
}
