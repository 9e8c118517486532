// Package render turns semantic animation frames into draw instructions.
package render

import (
	"fmt"

	"github.com/michael-fp/fp-chopped/internal/anim"
	"github.com/michael-fp/fp-chopped/internal/domain/curve"
	"github.com/michael-fp/fp-chopped/internal/domain/declutter"
	"github.com/michael-fp/fp-chopped/internal/domain/model"
)

// Default chart geometry and styling constants.
const (
	defaultWidth  = 960.0
	defaultHeight = 540.0

	marginLeft   = 40.0
	marginRight  = 120.0 // room for endpoint avatars and value labels
	marginTop    = 24.0
	marginBottom = 32.0

	endpointRadius = 14.0
	labelFontSize  = 12.0
	labelGap       = 4.0

	opacityNormal  = 0.9
	opacityFocused = 1.0
	opacityDimmed  = 0.25

	strokeNormal  = 2.0
	strokeFocused = 3.5
)

// Composer maps frames for one league onto a fixed canvas. It owns the
// session's palette and declutter engine so colors and endpoint nudges stay
// consistent from frame to frame.
type Composer struct {
	width     float64
	height    float64
	cap       float64
	palette   *Palette
	declutter *declutter.Engine
	curveOpts []curve.Option
}

// ComposerOption applies a configuration option to the Composer.
type ComposerOption func(*Composer)

// WithCanvas sets the output canvas size.
func WithCanvas(width, height float64) ComposerOption {
	return func(c *Composer) {
		if width > 0 && height > 0 {
			c.width = width
			c.height = height
		}
	}
}

// WithCurveOptions forwards options to the per-frame curve builders.
func WithCurveOptions(opts ...curve.Option) ComposerOption {
	return func(c *Composer) {
		c.curveOpts = opts
	}
}

// NewComposer creates a Composer for one league's cap.
func NewComposer(leagueCap float64, palette *Palette, engine *declutter.Engine, opts ...ComposerOption) *Composer {
	c := &Composer{
		width:     defaultWidth,
		height:    defaultHeight,
		cap:       leagueCap,
		palette:   palette,
		declutter: engine,
	}
	if c.cap <= 0 {
		c.cap = 1 // zero-cap degenerate case still needs a finite axis
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders one frame into primitive draw instructions plus tooltip
// metadata. Lines arrive pre-ordered; endpoint candidates are decluttered in
// that order so the pass is deterministic.
func (c *Composer) Compose(f anim.Frame) Frame {
	xOf := c.xMapper(f.Domain)
	yOf := c.yMapper()
	builder := curve.NewBuilder(xOf, yOf, append([]curve.Option{curve.WithDeltaScale(c.cap / 4)}, c.curveOpts...)...)

	// Endpoint candidates, in display order.
	candidates := make([]declutter.Point, 0, len(f.Lines))
	for _, line := range f.Lines {
		last, ok := line.Points.Last()
		if !ok {
			candidates = append(candidates, declutter.Point{})
			continue
		}
		candidates = append(candidates, declutter.Point{X: xOf(last.Position()), Y: yOf(last.Value)})
	}
	offsets := c.declutter.Resolve(candidates)

	out := Frame{
		Progress: f.Progress,
		State:    string(f.State),
		Width:    c.width,
		Height:   c.height,
	}

	for i, line := range f.Lines {
		if len(line.Points) == 0 {
			continue
		}
		color := c.palette.Assign(line.Team.LeagueID, line.Team.TeamID)
		stroke := color
		if line.Chopped {
			stroke = choppedColor
		}

		var override *model.RenderOverride
		endX := candidates[i].X + offsets[i].DX
		endY := candidates[i].Y + offsets[i].DY
		if offsets[i] != (declutter.Offset{}) {
			override = &model.RenderOverride{X: endX, Y: endY}
		}

		opacity, width := styleFor(line.Emphasis)
		out.Instructions = append(out.Instructions, Instruction{
			Kind:        KindPath,
			TeamID:      line.Team.TeamID,
			D:           builder.Build(line.Points, override).String(),
			Stroke:      stroke,
			StrokeWidth: width,
			Opacity:     opacity,
		})
		out.Instructions = append(out.Instructions, c.endpoint(line, stroke, opacity, endX, endY)...)

		out.Teams = append(out.Teams, TeamMeta{
			TeamID:           line.Team.TeamID,
			LeagueID:         line.Team.LeagueID,
			DisplayName:      line.Team.DisplayName,
			Color:            color,
			CurrentValue:     line.Team.CurrentValue,
			Eliminated:       line.Team.Eliminated,
			EliminatedPeriod: line.Team.EliminatedPeriod,
			LastValue:        line.Points.LastValue(),
			Emphasis:         string(line.Emphasis),
			Chopped:          line.Chopped,
		})
	}
	return out
}

// endpoint draws the marker at a line's (possibly decluttered) end: a
// circle, the avatar or initials inside it, and the running value label.
func (c *Composer) endpoint(line anim.TeamLine, stroke string, opacity, x, y float64) []Instruction {
	ins := []Instruction{{
		Kind:    KindCircle,
		TeamID:  line.Team.TeamID,
		X:       x,
		Y:       y,
		R:       endpointRadius,
		Fill:    "#ffffff",
		Stroke:  stroke,
		Opacity: opacity,
	}}

	if line.Team.AvatarRef != "" {
		ins = append(ins, Instruction{
			Kind:    KindImage,
			TeamID:  line.Team.TeamID,
			X:       x - endpointRadius,
			Y:       y - endpointRadius,
			W:       endpointRadius * 2,
			H:       endpointRadius * 2,
			Href:    line.Team.AvatarRef,
			Opacity: opacity,
		})
	} else {
		ins = append(ins, Instruction{
			Kind:     KindText,
			TeamID:   line.Team.TeamID,
			X:        x,
			Y:        y + labelFontSize/3,
			Text:     line.Team.Initials,
			Fill:     stroke,
			FontSize: labelFontSize,
			Opacity:  opacity,
		})
	}

	return append(ins, Instruction{
		Kind:     KindText,
		TeamID:   line.Team.TeamID,
		X:        x + endpointRadius + labelGap,
		Y:        y + labelFontSize/3,
		Text:     fmt.Sprintf("%.0f", line.Points.LastValue()),
		Fill:     stroke,
		FontSize: labelFontSize,
		Opacity:  opacity,
	})
}

// xMapper scales period positions onto the plot area. The domain is the
// dataset's furthest position, so the axis never shifts during playback.
func (c *Composer) xMapper(domain float64) func(float64) float64 {
	if domain <= 0 {
		domain = 1
	}
	plotW := c.width - marginLeft - marginRight
	return func(pos float64) float64 {
		return marginLeft + plotW*(pos/domain)
	}
}

// yMapper scales budget values: the cap sits at the top, zero at the bottom.
func (c *Composer) yMapper() func(float64) float64 {
	plotH := c.height - marginTop - marginBottom
	return func(value float64) float64 {
		return marginTop + plotH*(1-value/c.cap)
	}
}

func styleFor(e anim.Emphasis) (opacity, strokeWidth float64) {
	switch e {
	case anim.EmphasisFocused:
		return opacityFocused, strokeFocused
	case anim.EmphasisDimmed:
		return opacityDimmed, strokeNormal
	default:
		return opacityNormal, strokeNormal
	}
}
