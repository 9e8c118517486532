// Package anim drives the progressive reveal of reconstructed timelines.
package anim

import (
	"time"

	"github.com/michael-fp/fp-chopped/internal/domain/view"
)

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithClock injects the time source. Tests use a fake clock.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDuration sets the wall-clock budget of one full playback.
func WithDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithFilters sets the initial view filters.
func WithFilters(scope view.Scope, leagueID string, status view.StatusFilter) Option {
	return func(c *Controller) {
		c.scope = scope
		c.leagueID = leagueID
		c.status = status
	}
}
