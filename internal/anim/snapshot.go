// Package anim drives the progressive reveal of reconstructed timelines.
package anim

import (
	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/internal/domain/view"
)

// SnapshotRequest describes one static frame computation.
type SnapshotRequest struct {
	Scope    view.Scope
	LeagueID string
	Status   view.StatusFilter
	Focus    string
	Progress float64
}

// Snapshot computes a single frame without a controller: the same recompute
// the frame loop performs, but for a one-shot HTTP render. Progress 1 yields
// the fully revealed, horizon-extended chart.
func Snapshot(timelines map[string]model.Timeline, roster []model.Team, req SnapshotRequest) Frame {
	p := clampProgress(req.Progress)
	c := NewController(timelines, roster, nil, nil,
		WithFilters(req.Scope, req.LeagueID, req.Status),
	)
	c.focus = req.Focus

	if p >= 1 {
		return c.idleFrame()
	}
	f := c.frameAt(p)
	f.State = Paused // a partial snapshot is a frozen reveal, not a live one
	return f
}
