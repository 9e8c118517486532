// Package curve converts an ordered point sequence into a smooth cubic path
// ready for a vector-drawing primitive.
package curve

import (
	"fmt"
	"math"
	"strings"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// Default tension configuration constants. Tension stays inside a bounded
// range so degenerate deltas (near-zero or extreme) never produce unstable
// control points.
const (
	defaultMinTension = 0.3
	defaultMaxTension = 0.6
	defaultDeltaScale = 100.0
)

// Command is one path segment. Coordinates are final screen coordinates.
type Command interface {
	encode(sb *strings.Builder)
}

// MoveTo starts a subpath at (X, Y).
type MoveTo struct {
	X, Y float64
}

// CubicTo draws a cubic segment to (X, Y) with the given control points.
type CubicTo struct {
	X1, Y1, X2, Y2, X, Y float64
}

func (c MoveTo) encode(sb *strings.Builder) {
	fmt.Fprintf(sb, "M %.2f %.2f", c.X, c.Y)
}

func (c CubicTo) encode(sb *strings.Builder) {
	fmt.Fprintf(sb, " C %.2f %.2f, %.2f %.2f, %.2f %.2f", c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y)
}

// Path is an ordered command sequence.
type Path []Command

// String encodes the path as an SVG path-data string.
func (p Path) String() string {
	var sb strings.Builder
	for _, c := range p {
		c.encode(&sb)
	}
	return sb.String()
}

// Builder maps timeline points to screen space and connects them with
// cubic segments. Control-point tension grows with the magnitude of the
// value change so a single large bid reads as a step, not a gradual slope.
type Builder struct {
	xOf        func(position float64) float64
	yOf        func(value float64) float64
	minTension float64
	maxTension float64
	deltaScale float64 // value delta at which tension saturates
}

// NewBuilder creates a Builder around the two coordinate mappers.
func NewBuilder(xOf func(float64) float64, yOf func(float64) float64, opts ...Option) *Builder {
	b := &Builder{
		xOf:        xOf,
		yOf:        yOf,
		minTension: defaultMinTension,
		maxTension: defaultMaxTension,
		deltaScale: defaultDeltaScale,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the path for the given points. A non-nil override replaces
// the mapped coordinate of the final point only, so a decluttered endpoint
// can be drawn elsewhere without touching the timeline itself.
func (b *Builder) Build(points model.Timeline, override *model.RenderOverride) Path {
	if len(points) == 0 {
		return nil
	}

	path := make(Path, 0, len(points))
	x0 := b.xOf(points[0].Position())
	y0 := b.yOf(points[0].Value)
	path = append(path, MoveTo{X: x0, Y: y0})

	px, py := x0, y0
	for i := 1; i < len(points); i++ {
		x := b.xOf(points[i].Position())
		y := b.yOf(points[i].Value)
		if i == len(points)-1 && override != nil {
			x, y = override.X, override.Y
		}

		t := b.tension(points[i].Value - points[i-1].Value)
		dx := (x - px) * t
		path = append(path, CubicTo{
			X1: px + dx, Y1: py,
			X2: x - dx, Y2: y,
			X: x, Y: y,
		})
		px, py = x, y
	}
	return path
}

// tension maps |delta| into [minTension, maxTension]: bigger drops get
// tighter curvature.
func (b *Builder) tension(delta float64) float64 {
	scale := b.deltaScale
	if scale <= 0 {
		scale = defaultDeltaScale
	}
	frac := math.Min(math.Abs(delta)/scale, 1)
	t := b.minTension + (b.maxTension-b.minTension)*frac
	return math.Min(b.maxTension, math.Max(b.minTension, t))
}
