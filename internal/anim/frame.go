// Package anim drives the progressive reveal of reconstructed timelines.
package anim

import (
	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// State is the controller's lifecycle phase.
type State string

// Controller states.
const (
	Idle    State = "idle"
	Playing State = "playing"
	Paused  State = "paused"
)

// Emphasis is the visual weight of one line, derived from the focused team.
type Emphasis string

// Emphasis values.
const (
	EmphasisNormal  Emphasis = "normal"
	EmphasisFocused Emphasis = "focused"
	EmphasisDimmed  Emphasis = "dimmed"
)

// TeamLine is one team's visible slice of the chart at a moment in time.
// Points is a prefix of (or the horizon-extended form of) the team's
// timeline; it never aliases the reconstructed source.
type TeamLine struct {
	Team     model.Team
	Points   model.Timeline
	Emphasis Emphasis
	Chopped  bool // past its elimination point at the current progress
}

// Frame is the semantic render state handed to the sink. Lines are in
// display order (latest value descending).
type Frame struct {
	Progress float64
	State    State
	Horizon  float64 // period-position the reveal has reached
	Domain   float64 // furthest period-position in the dataset, fixes the x axis
	Lines    []TeamLine
}

// Sink consumes frames. Implementations turn them into draw instructions;
// the controller itself never touches a drawing surface.
type Sink interface {
	RenderFrame(f Frame)
}
