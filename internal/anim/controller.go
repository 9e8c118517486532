// Package anim drives the progressive reveal of reconstructed timelines
// over wall-clock time, with pause, resume, scrub, and re-entrant filter
// changes.
//
// The controller is a plain state machine (Idle, Playing, Paused) with no
// goroutines of its own. The host injects a Scheduler and must serialize
// every entry point, frame callbacks included, on one logical thread. At
// most one frame request is in flight at a time; stale callbacks are
// invalidated by a generation token, so a late or duplicate callback can
// never corrupt state.
package anim

import (
	"math"
	"time"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/internal/domain/timeline"
	"github.com/michael-fp/fp-chopped/internal/domain/view"
)

const defaultDuration = 8 * time.Second

// Controller animates one league dataset for one viewer.
type Controller struct {
	clock    func() time.Time
	duration time.Duration
	sched    Scheduler
	sink     Sink

	// Read-only source of truth; the controller recomputes every frame
	// from these instead of mutating incrementally.
	timelines  map[string]model.Timeline
	roster     []model.Team
	rosterByID map[string]model.Team
	maxReveal  float64 // furthest period-position in the dataset

	scope    view.Scope
	leagueID string
	status   view.StatusFilter
	focus    string

	state     State
	startedAt time.Time // effective start, shifted on resume/scrub
	progress  float64   // last recorded progress while Paused/Idle
	gen       uint64    // invalidates frame callbacks scheduled before a cancel
	cancel    func()    // pending frame request, nil when none

	// Horizon extension is computed once per dataset and cached; reaching
	// full progress only ever triggers it a single time.
	extended      map[string]model.Timeline
	extendHorizon float64
}

// NewController creates an Idle controller over the reconstructed timelines.
func NewController(timelines map[string]model.Timeline, roster []model.Team, sink Sink, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		clock:    time.Now,
		duration: defaultDuration,
		sched:    sched,
		sink:     sink,

		timelines:  timelines,
		roster:     roster,
		rosterByID: make(map[string]model.Team, len(roster)),

		scope:  view.ScopeAll,
		status: view.StatusAll,
		state:  Idle,
	}
	for _, team := range roster {
		c.rosterByID[team.TeamID] = team
	}
	for _, tl := range timelines {
		if pos := tl.MaxPosition(); pos > c.maxReveal {
			c.maxReveal = pos
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return c.state }

// Progress returns the playback progress in [0,1].
func (c *Controller) Progress() float64 {
	if c.state == Playing {
		return c.elapsedProgress()
	}
	return c.progress
}

// Focus returns the focused team ID, empty when nothing is focused.
func (c *Controller) Focus() string { return c.focus }

// Start begins playback from progress 0. It is only valid from Idle; a
// re-entrant call while Playing (or Paused) is a rejected no-op.
func (c *Controller) Start() bool {
	if c.state != Idle {
		return false
	}
	c.state = Playing
	c.progress = 0
	c.startedAt = c.clock()
	c.requestFrame()
	return true
}

// Pause stops the frame loop and records the progress reached. Only valid
// while Playing.
func (c *Controller) Pause() bool {
	if c.state != Playing {
		return false
	}
	c.progress = c.elapsedProgress()
	c.state = Paused
	c.invalidate()
	return true
}

// Resume continues playback from the given progress. Valid from Paused, and
// from Idle as a scrub request. The effective start time is shifted so
// elapsed-time tracking continues smoothly from that point.
func (c *Controller) Resume(fromProgress float64) bool {
	if c.state == Playing {
		return false
	}
	p := clampProgress(fromProgress)
	c.state = Playing
	c.progress = p
	c.startedAt = c.clock().Add(-time.Duration(p * float64(c.duration)))
	c.invalidate()
	c.requestFrame()
	return true
}

// SetFilters applies a new view scope. A change while Playing must not
// discard progress: the in-flight frame request is dropped and the loop
// restarts at the same progress against the new view.
func (c *Controller) SetFilters(scope view.Scope, leagueID string, status view.StatusFilter) {
	c.scope = scope
	c.leagueID = leagueID
	c.status = status

	switch c.state {
	case Playing:
		p := c.elapsedProgress()
		c.startedAt = c.clock().Add(-time.Duration(p * float64(c.duration)))
		c.invalidate()
		c.requestFrame()
	case Paused:
		c.sink.RenderFrame(c.frameAt(c.progress))
	default:
		c.sink.RenderFrame(c.idleFrame())
	}
}

// SetFocus highlights one team, or clears the highlight with an empty ID.
// When static, the change re-renders immediately; while Playing, the next
// scheduled frame already recomputes focus styling, so no extra render
// happens here.
func (c *Controller) SetFocus(teamID string) {
	if c.focus == teamID {
		return
	}
	c.focus = teamID

	switch c.state {
	case Playing:
		// next tick picks it up
	case Paused:
		c.sink.RenderFrame(c.frameAt(c.progress))
	default:
		c.sink.RenderFrame(c.idleFrame())
	}
}

// RenderCurrent renders the frame for the present state without changing
// it. Used when a viewer first attaches.
func (c *Controller) RenderCurrent() {
	switch c.state {
	case Playing:
		// the pending frame request covers it
	case Paused:
		c.sink.RenderFrame(c.frameAt(c.progress))
	default:
		c.sink.RenderFrame(c.idleFrame())
	}
}

// Dispose drops any pending frame request and returns the controller to
// Idle. Safe to call more than once.
func (c *Controller) Dispose() {
	c.invalidate()
	c.state = Idle
	c.progress = 0
}

// requestFrame schedules exactly one tick, replacing any pending request.
func (c *Controller) requestFrame() {
	if c.cancel != nil {
		c.cancel()
	}
	g := c.gen
	c.cancel = c.sched.RequestFrame(func() { c.tick(g) })
}

// invalidate cancels the pending frame request and marks any callback
// already dispatched as stale.
func (c *Controller) invalidate() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// tick advances playback by one frame. Stale or duplicate callbacks are
// dropped by the generation guard.
func (c *Controller) tick(gen uint64) {
	if gen != c.gen || c.state != Playing {
		return
	}

	p := c.elapsedProgress()
	if p >= 1 {
		c.progress = 1
		c.state = Idle
		c.cancel = nil
		c.sink.RenderFrame(c.idleFrame())
		return
	}

	c.progress = p
	c.sink.RenderFrame(c.frameAt(p))
	c.requestFrame()
}

func (c *Controller) elapsedProgress() float64 {
	if c.duration <= 0 {
		return 1
	}
	return clampProgress(float64(c.clock().Sub(c.startedAt)) / float64(c.duration))
}

// frameAt builds the partially revealed frame for the given progress.
func (c *Controller) frameAt(p float64) Frame {
	horizon := c.maxReveal * p
	sels := view.Apply(c.timelines, c.roster, c.scope, c.leagueID, c.status)

	lines := make([]TeamLine, 0, len(sels))
	for _, sel := range sels {
		team := c.rosterByID[sel.TeamID]
		lines = append(lines, TeamLine{
			Team:     team,
			Points:   timeline.Prefix(c.timelines[sel.TeamID], horizon),
			Emphasis: c.emphasis(sel.TeamID),
			Chopped:  c.chopped(team, horizon),
		})
	}
	return Frame{Progress: p, State: c.state, Horizon: horizon, Domain: c.maxReveal, Lines: lines}
}

// idleFrame is the fully revealed chart: every line extended to a
// comparable endpoint, chopped styling applied to eliminated teams.
func (c *Controller) idleFrame() Frame {
	ext := c.extendedTimelines()
	sels := view.Apply(c.timelines, c.roster, c.scope, c.leagueID, c.status)

	lines := make([]TeamLine, 0, len(sels))
	for _, sel := range sels {
		team := c.rosterByID[sel.TeamID]
		lines = append(lines, TeamLine{
			Team:     team,
			Points:   ext[sel.TeamID],
			Emphasis: c.emphasis(sel.TeamID),
			Chopped:  team.Eliminated,
		})
	}
	return Frame{Progress: 1, State: Idle, Horizon: c.extendHorizon, Domain: c.maxReveal, Lines: lines}
}

// extendedTimelines performs the extend-to-horizon step at most once per
// dataset and caches the result.
func (c *Controller) extendedTimelines() map[string]model.Timeline {
	if c.extended != nil {
		return c.extended
	}
	c.extendHorizon = timeline.Horizon(c.timelines, c.roster)
	c.extended = make(map[string]model.Timeline, len(c.timelines))
	for _, team := range c.roster {
		c.extended[team.TeamID] = timeline.ExtendToHorizon(c.timelines[team.TeamID], team, c.extendHorizon)
	}
	return c.extended
}

func (c *Controller) emphasis(teamID string) Emphasis {
	switch {
	case c.focus == "":
		return EmphasisNormal
	case c.focus == teamID:
		return EmphasisFocused
	default:
		return EmphasisDimmed
	}
}

// chopped reports whether the reveal has passed the team's elimination
// point. Teams without a recorded elimination period fall back to the end
// of their own line.
func (c *Controller) chopped(team model.Team, horizon float64) bool {
	if !team.Eliminated {
		return false
	}
	cut := c.timelines[team.TeamID].MaxPosition()
	if team.EliminatedPeriod != nil {
		cut = float64(*team.EliminatedPeriod)
	}
	return horizon >= cut
}

func clampProgress(p float64) float64 {
	return math.Min(1, math.Max(0, p))
}
