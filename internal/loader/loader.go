// Package loader reads a season file (leagues, rosters, bid events) and
// feeds it into the ingest pipeline. The file is the static-log boundary:
// once loaded, the event log only grows through the ingest queue.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/pkg/logger"
)

// SeasonFile is the on-disk season format.
type SeasonFile struct {
	Leagues []LeagueRecord `json:"leagues"`
}

// LeagueRecord bundles one league with its roster and event log.
type LeagueRecord struct {
	LeagueID string        `json:"league_id"`
	Name     string        `json:"name"`
	Cap      float64       `json:"cap"`
	Teams    []TeamRecord  `json:"teams"`
	Events   []EventRecord `json:"events"`
}

// TeamRecord is one roster entry.
type TeamRecord struct {
	TeamID           string  `json:"team_id"`
	DisplayName      string  `json:"display_name"`
	AvatarRef        string  `json:"avatar,omitempty"`
	Initials         string  `json:"initials,omitempty"`
	CurrentValue     float64 `json:"current_value"`
	Eliminated       bool    `json:"eliminated,omitempty"`
	EliminatedPeriod *int    `json:"eliminated_period,omitempty"`
}

// EventRecord is one bid event as stored in the season file.
type EventRecord struct {
	EventID string  `json:"event_id,omitempty"`
	TeamID  string  `json:"team_id"`
	Period  int     `json:"period"`
	Amount  float64 `json:"amount"`
	Status  string  `json:"status"`
	Type    string  `json:"type"`
	TS      int64   `json:"ts"`
}

// RosterWriter receives leagues and teams as they are read from the file.
type RosterWriter interface {
	PutLeague(ctx context.Context, league model.League)
	PutTeam(ctx context.Context, team model.Team) error
}

// Enqueuer receives the file's events for the worker pool to commit.
type Enqueuer interface {
	Enqueue(ctx context.Context, e model.BidEvent) bool
}

// Summary reports what a load pass accepted and dropped.
type Summary struct {
	Leagues  int
	Teams    int
	Enqueued int
	Dropped  int
}

// Loader feeds a season file into a roster writer and an event queue.
type Loader struct {
	store RosterWriter
	queue Enqueuer
	log   logger.Logger
}

// New creates a Loader bound to a store and a queue.
func New(store RosterWriter, queue Enqueuer) *Loader {
	return &Loader{
		store: store,
		queue: queue,
		log:   logger.Named("loader"),
	}
}

// LoadFile opens and loads a season file from disk.
func (l *Loader) LoadFile(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrOpenSeasonFile, err)
	}
	defer func() { _ = f.Close() }()

	return l.Load(ctx, f)
}

// Load parses season JSON from r and feeds it into the pipeline. Rosters
// go straight to the store; events go through the queue so they share the
// dedupe and validation path with live ingest.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Summary, error) {
	var season SeasonFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&season); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrParseSeasonFile, err)
	}

	var sum Summary
	for _, lr := range season.Leagues {
		if lr.LeagueID == "" {
			return sum, fmt.Errorf("%w: league with empty id", ErrInvalidSeason)
		}
		if lr.Cap <= 0 {
			return sum, fmt.Errorf("%w: league %s has non-positive cap", ErrInvalidSeason, lr.LeagueID)
		}

		l.store.PutLeague(ctx, model.League{
			LeagueID: lr.LeagueID,
			Name:     lr.Name,
			Cap:      lr.Cap,
		})
		sum.Leagues++

		for _, tr := range lr.Teams {
			if tr.TeamID == "" {
				return sum, fmt.Errorf("%w: league %s has team with empty id", ErrInvalidSeason, lr.LeagueID)
			}
			team := model.Team{
				LeagueID:         lr.LeagueID,
				TeamID:           tr.TeamID,
				DisplayName:      tr.DisplayName,
				AvatarRef:        tr.AvatarRef,
				Initials:         tr.Initials,
				CurrentValue:     tr.CurrentValue,
				Eliminated:       tr.Eliminated,
				EliminatedPeriod: tr.EliminatedPeriod,
			}
			if err := l.store.PutTeam(ctx, team); err != nil {
				return sum, err
			}
			sum.Teams++
		}

		for _, er := range lr.Events {
			e := model.BidEvent{
				EventID:  er.EventID,
				LeagueID: lr.LeagueID,
				TeamID:   er.TeamID,
				Period:   er.Period,
				Amount:   er.Amount,
				Status:   er.Status,
				Type:     er.Type,
				TS:       er.TS,
			}
			if l.queue.Enqueue(ctx, e) {
				sum.Enqueued++
			} else {
				sum.Dropped++
			}
		}
	}

	l.log.Info(ctx, "season loaded",
		logger.Int("leagues", sum.Leagues),
		logger.Int("teams", sum.Teams),
		logger.Int("events_enqueued", sum.Enqueued),
		logger.Int("events_dropped", sum.Dropped))
	return sum, nil
}
