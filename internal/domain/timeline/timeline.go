// Package timeline rebuilds remaining-budget histories from the bid event
// log. Reconstruction is a pure replay: the same cap, roster, and events
// always produce identical timelines.
package timeline

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// Default reconstruction configuration constants.
const (
	defaultPeriodLength = 7 * 24 * time.Hour // one gameweek
)

// Reconstructor folds a league's event log into one timeline per team.
// Epoch marks the opening of period 1; both epoch and period length come
// from configuration because they depend on the season calendar.
type Reconstructor struct {
	epoch        int64 // unix seconds at which period 1 opens
	periodLength time.Duration
}

// New creates a Reconstructor with configuration options.
func New(opts ...Option) *Reconstructor {
	r := &Reconstructor{
		periodLength: defaultPeriodLength,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build reconstructs every rostered team's timeline from the event log.
//
// Events referencing unknown teams are dropped without failing the rest of
// the reconstruction. A zero cap degenerates to all-zero values, which is
// legal. The returned map shares no storage with the inputs.
func (r *Reconstructor) Build(ctx context.Context, league model.League, roster []model.Team, events []model.BidEvent) map[string]model.Timeline {
	timelines := make(map[string]model.Timeline, len(roster))
	for _, team := range roster {
		timelines[team.TeamID] = model.Timeline{{
			Period:         0,
			PeriodProgress: 0,
			Value:          league.Cap,
			TS:             0,
		}}
	}

	bids := make([]model.BidEvent, 0, len(events))
	for _, e := range events {
		if e.Participates() {
			bids = append(bids, e)
		}
	}
	// Period is the primary order; timestamps only break ties within one
	// period. Stable sort keeps ingest order for identical (period, ts).
	sort.SliceStable(bids, func(i, j int) bool {
		if bids[i].Period != bids[j].Period {
			return bids[i].Period < bids[j].Period
		}
		return bids[i].TS < bids[j].TS
	})

	for _, e := range bids {
		t, ok := timelines[e.TeamID]
		if !ok {
			continue // unknown team reference, drop the event
		}
		last, _ := t.Last()
		timelines[e.TeamID] = append(t, model.TimelinePoint{
			Period:         e.Period,
			PeriodProgress: r.periodProgress(e.Period, e.TS),
			Value:          last.Value - e.Amount,
			TS:             e.TS,
		})
	}

	return timelines
}

// periodProgress maps an event timestamp into its period's window, clamped
// to [0,1] so events logged outside the window never escape their period.
func (r *Reconstructor) periodProgress(period int, ts int64) float64 {
	length := r.periodLength.Seconds()
	if length <= 0 {
		return 0
	}
	windowStart := float64(r.epoch) + float64(period-1)*length
	progress := (float64(ts) - windowStart) / length
	return math.Min(1, math.Max(0, progress))
}

// Prefix returns the part of t visible at the given period-position horizon.
// When the horizon falls strictly between two recorded points, one partial
// point is linearly interpolated at the boundary. The result never aliases t.
func Prefix(t model.Timeline, horizon float64) model.Timeline {
	if len(t) == 0 {
		return nil
	}
	n := 0
	for n < len(t) && t[n].Position() <= horizon {
		n++
	}
	out := make(model.Timeline, n, n+1)
	copy(out, t[:n])
	if n == 0 || n == len(t) {
		return out
	}

	prev, next := t[n-1], t[n]
	span := next.Position() - prev.Position()
	if span <= 0 {
		return out
	}
	frac := (horizon - prev.Position()) / span
	whole, part := math.Modf(horizon)
	return append(out, model.TimelinePoint{
		Period:         int(whole),
		PeriodProgress: part,
		Value:          prev.Value + frac*(next.Value-prev.Value),
		TS:             prev.TS + int64(frac*float64(next.TS-prev.TS)),
	})
}

// Horizon returns the furthest period-position reached by any non-eliminated
// team, the shared endpoint all active lines are extended to.
func Horizon(timelines map[string]model.Timeline, roster []model.Team) float64 {
	var h float64
	for _, team := range roster {
		if team.Eliminated {
			continue
		}
		if pos := timelines[team.TeamID].MaxPosition(); pos > h {
			h = pos
		}
	}
	return h
}

// ExtendToHorizon appends a flat trailing point so the line ends at a
// visually comparable position: the elimination period for chopped teams,
// the shared horizon for everyone else. Already-long-enough timelines are
// returned as a plain copy.
func ExtendToHorizon(t model.Timeline, team model.Team, horizon float64) model.Timeline {
	last, ok := t.Last()
	if !ok {
		return nil
	}

	end := horizon
	if team.Eliminated && team.EliminatedPeriod != nil {
		end = float64(*team.EliminatedPeriod)
	}
	if last.Position() >= end {
		return t.Clone()
	}

	whole, part := math.Modf(end)
	out := make(model.Timeline, len(t), len(t)+1)
	copy(out, t)
	return append(out, model.TimelinePoint{
		Period:         int(whole),
		PeriodProgress: part,
		Value:          last.Value,
		TS:             last.TS,
	})
}
