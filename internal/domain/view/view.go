// Package view derives the visible subset and order of teams from the two
// chart filters. Filtering is pure: it never mutates the timelines or the
// roster it reads from.
package view

import (
	"sort"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// Scope selects which leagues are in view.
type Scope string

// StatusFilter selects teams by elimination state.
type StatusFilter string

// Filter values.
const (
	ScopeAll    Scope = "all"
	ScopeLeague Scope = "league" // single league, identified separately

	StatusAll       StatusFilter = "all"
	StatusRemaining StatusFilter = "remaining"
	StatusChopped   StatusFilter = "chopped"
)

// Selection names one visible team in display order.
type Selection struct {
	LeagueID string
	TeamID   string
}

// Apply combines the two filters by logical AND and returns the visible
// teams ordered by latest remaining value, descending. Ties keep roster
// insertion order so repeated calls on the same inputs agree exactly.
//
// The roster slice supplies both team state and insertion order; teams with
// no reconstructed timeline are skipped.
func Apply(timelines map[string]model.Timeline, roster []model.Team, scope Scope, leagueID string, status StatusFilter) []Selection {
	type ranked struct {
		sel   Selection
		value float64
		order int
	}

	visible := make([]ranked, 0, len(roster))
	for i, team := range roster {
		if scope == ScopeLeague && team.LeagueID != leagueID {
			continue
		}
		if !matchesStatus(team, status) {
			continue
		}
		tl, ok := timelines[team.TeamID]
		if !ok {
			continue
		}
		visible = append(visible, ranked{
			sel:   Selection{LeagueID: team.LeagueID, TeamID: team.TeamID},
			value: tl.LastValue(),
			order: i,
		})
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].value != visible[j].value {
			return visible[i].value > visible[j].value
		}
		return visible[i].order < visible[j].order
	})

	out := make([]Selection, len(visible))
	for i, v := range visible {
		out[i] = v.sel
	}
	return out
}

func matchesStatus(team model.Team, status StatusFilter) bool {
	switch status {
	case StatusRemaining:
		return !team.Eliminated
	case StatusChopped:
		return team.Eliminated
	default:
		return true
	}
}
