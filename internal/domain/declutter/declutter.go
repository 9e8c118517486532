// Package declutter resolves near-coincident line endpoints by nudging later
// candidates away from earlier ones. The pass is deliberately O(n²) over a
// small n (tens of teams) and fully deterministic for a given input order.
package declutter

import "math"

// Default proximity and nudge constants. The vertical step is larger than
// the horizontal one so stacked endpoints fan out roughly diagonally.
const (
	defaultThresholdX = 18.0
	defaultThresholdY = 14.0
	defaultStepX      = 6.0
	defaultStepY      = 16.0
)

// Point is a candidate endpoint position in screen space.
type Point struct {
	X, Y float64
}

// Offset is the per-candidate displacement computed by Resolve.
type Offset struct {
	DX, DY float64
}

// Engine holds the proximity thresholds and nudge steps.
type Engine struct {
	thresholdX float64
	thresholdY float64
	stepX      float64
	stepY      float64
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		thresholdX: defaultThresholdX,
		thresholdY: defaultThresholdY,
		stepX:      defaultStepX,
		stepY:      defaultStepY,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve computes one offset per candidate. Candidates must arrive in a
// fixed order (teams sorted by current value); candidate i is compared
// against every already-placed candidate j<i and accumulates a fixed nudge
// for each collision, so re-running on the same input yields identical
// offsets.
func (e *Engine) Resolve(candidates []Point) []Offset {
	offsets := make([]Offset, len(candidates))
	placed := make([]Point, 0, len(candidates))

	for i, c := range candidates {
		pos := c
		for _, prev := range placed {
			if math.Abs(pos.X-prev.X) < e.thresholdX && math.Abs(pos.Y-prev.Y) < e.thresholdY {
				pos.X += e.stepX
				pos.Y += e.stepY
			}
		}
		offsets[i] = Offset{DX: pos.X - c.X, DY: pos.Y - c.Y}
		placed = append(placed, pos)
	}
	return offsets
}
