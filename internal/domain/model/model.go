// Package model contains domain models passed between layers.
package model

// Bid event status and type values accepted from upstream.
const (
	StatusComplete = "complete"
	TypeBudgetBid  = "budget-bid"
)

// League is an independent competition with its own cap and roster.
type League struct {
	LeagueID string
	Name     string
	Cap      float64
}

// Team is one competing entry inside a league. CurrentValue is the
// authoritative remaining budget reported by upstream roster state, not a
// value derived from events.
type Team struct {
	LeagueID         string
	TeamID           string
	DisplayName      string
	AvatarRef        string // empty when the team has no avatar
	Initials         string // fallback when AvatarRef is empty
	CurrentValue     float64
	Eliminated       bool
	EliminatedPeriod *int // nil when unknown or not eliminated
}

// BidEvent is one completed budget-reducing action. Events are immutable
// once ingested; only complete budget-bid events participate in
// reconstruction.
type BidEvent struct {
	EventID  string
	LeagueID string
	TeamID   string
	Period   int // 1..N gameweek index
	Amount   float64
	Status   string
	Type     string
	TS       int64 // unix seconds, used only for intra-period ordering
}

// Participates reports whether the event counts toward reconstruction.
func (e BidEvent) Participates() bool {
	return e.Status == StatusComplete && e.Type == TypeBudgetBid
}

// TimelinePoint is one sample of a team's remaining budget.
// PeriodProgress places the point inside its period window, in [0,1].
type TimelinePoint struct {
	Period         int     `json:"period"`
	PeriodProgress float64 `json:"periodProgress"`
	Value          float64 `json:"value"`
	TS             int64   `json:"timestamp"`
}

// Position maps the point onto the continuous period axis.
func (p TimelinePoint) Position() float64 {
	return float64(p.Period) + p.PeriodProgress
}

// Timeline is a team's ordered, non-decreasing-in-time budget sequence.
// It always starts at {period 0, progress 0, value cap}.
type Timeline []TimelinePoint

// Last returns the final point. Callers must check ok on empty timelines.
func (t Timeline) Last() (TimelinePoint, bool) {
	if len(t) == 0 {
		return TimelinePoint{}, false
	}
	return t[len(t)-1], true
}

// LastValue returns the final point's value, or 0 for an empty timeline.
func (t Timeline) LastValue() float64 {
	p, ok := t.Last()
	if !ok {
		return 0
	}
	return p.Value
}

// MaxPosition returns the furthest period-position the timeline reaches.
func (t Timeline) MaxPosition() float64 {
	p, ok := t.Last()
	if !ok {
		return 0
	}
	return p.Position()
}

// Clone returns a copy that shares no backing storage with t.
func (t Timeline) Clone() Timeline {
	if t == nil {
		return nil
	}
	out := make(Timeline, len(t))
	copy(out, t)
	return out
}

// RenderOverride carries a decluttered on-screen position for a timeline
// endpoint. It is kept alongside the point, never merged into it, so the
// underlying timeline stays untouched.
type RenderOverride struct {
	X float64
	Y float64
}
