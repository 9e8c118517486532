package render_test

import (
	"strings"
	"testing"

	"github.com/michael-fp/fp-chopped/internal/anim"
	"github.com/michael-fp/fp-chopped/internal/domain/declutter"
	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/internal/render"
	. "github.com/smartystreets/goconvey/convey"
)

func line(teamID string, points model.Timeline, emphasis anim.Emphasis, chopped bool) anim.TeamLine {
	return anim.TeamLine{
		Team:     model.Team{LeagueID: "l1", TeamID: teamID, DisplayName: teamID, Initials: "TT"},
		Points:   points,
		Emphasis: emphasis,
		Chopped:  chopped,
	}
}

func TestComposer_Compose(t *testing.T) {
	Convey("Given a composer for a cap-1000 league", t, func() {
		palette := render.NewPalette()
		c := render.NewComposer(1000, palette, declutter.New())

		Convey("When composing a frame with two well-separated lines", func() {
			f := c.Compose(anim.Frame{
				Progress: 1,
				State:    anim.Idle,
				Domain:   10,
				Lines: []anim.TeamLine{
					line("a", model.Timeline{{Value: 1000}, {Period: 9, Value: 800}}, anim.EmphasisNormal, false),
					line("b", model.Timeline{{Value: 1000}, {Period: 9, Value: 300}}, anim.EmphasisNormal, false),
				},
			})

			Convey("Then each line yields a path, a circle, a marker and a value label", func() {
				paths := 0
				for _, ins := range f.Instructions {
					if ins.Kind == render.KindPath {
						paths++
						So(ins.D, ShouldStartWith, "M ")
						So(strings.Contains(ins.D, "C "), ShouldBeTrue)
					}
				}
				So(paths, ShouldEqual, 2)
				So(f.Instructions, ShouldHaveLength, 8)
			})

			Convey("And tooltip metadata accompanies every line", func() {
				So(f.Teams, ShouldHaveLength, 2)
				So(f.Teams[0].TeamID, ShouldEqual, "a")
				So(f.Teams[0].LastValue, ShouldEqual, 800)
				So(f.Teams[0].Color, ShouldNotBeEmpty)
			})

			Convey("And the two lines get distinct colors", func() {
				So(f.Teams[0].Color, ShouldNotEqual, f.Teams[1].Color)
			})
		})

		Convey("When two endpoints coincide", func() {
			mk := func() anim.Frame {
				return anim.Frame{
					Progress: 1,
					Domain:   10,
					Lines: []anim.TeamLine{
						line("a", model.Timeline{{Value: 1000}, {Period: 9, Value: 500}}, anim.EmphasisNormal, false),
						line("b", model.Timeline{{Value: 1000}, {Period: 9, Value: 500}}, anim.EmphasisNormal, false),
					},
				}
			}
			f := c.Compose(mk())

			Convey("Then the second line's endpoint circle is nudged away", func() {
				var circles []render.Instruction
				for _, ins := range f.Instructions {
					if ins.Kind == render.KindCircle {
						circles = append(circles, ins)
					}
				}
				So(circles, ShouldHaveLength, 2)
				So(circles[1].X, ShouldBeGreaterThan, circles[0].X)
				So(circles[1].Y, ShouldBeGreaterThan, circles[0].Y)
			})

			Convey("And its path is redrawn to the decluttered position", func() {
				var paths []render.Instruction
				for _, ins := range f.Instructions {
					if ins.Kind == render.KindPath {
						paths = append(paths, ins)
					}
				}
				So(paths[0].D, ShouldNotEqual, paths[1].D)
			})

			Convey("And composing the same frame again is deterministic", func() {
				So(c.Compose(mk()), ShouldResemble, f)
			})
		})

		Convey("When a line is chopped", func() {
			f := c.Compose(anim.Frame{
				Domain: 10,
				Lines: []anim.TeamLine{
					line("a", model.Timeline{{Value: 1000}, {Period: 5, Value: 200}}, anim.EmphasisFocused, true),
				},
			})

			Convey("Then it renders desaturated regardless of focus", func() {
				So(f.Instructions[0].Stroke, ShouldEqual, "#9aa0a6")
				So(f.Instructions[0].Opacity, ShouldEqual, 1.0)
			})
		})

		Convey("When emphasis differs", func() {
			f := c.Compose(anim.Frame{
				Domain: 10,
				Lines: []anim.TeamLine{
					line("a", model.Timeline{{Value: 1000}, {Period: 2, Value: 900}}, anim.EmphasisFocused, false),
					line("b", model.Timeline{{Value: 1000}, {Period: 2, Value: 100}}, anim.EmphasisDimmed, false),
				},
			})

			Convey("Then focused lines are heavier and dimmed ones translucent", func() {
				var paths []render.Instruction
				for _, ins := range f.Instructions {
					if ins.Kind == render.KindPath {
						paths = append(paths, ins)
					}
				}
				So(paths[0].StrokeWidth, ShouldBeGreaterThan, paths[1].StrokeWidth)
				So(paths[1].Opacity, ShouldBeLessThan, paths[0].Opacity)
			})
		})

		Convey("When the frame has no lines", func() {
			f := c.Compose(anim.Frame{Domain: 10})

			Convey("Then an explicit empty frame comes back", func() {
				So(f.Instructions, ShouldBeEmpty)
				So(f.Teams, ShouldBeEmpty)
				So(f.Width, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestPalette(t *testing.T) {
	Convey("Given a palette", t, func() {
		p := render.NewPalette()

		Convey("When teams are assigned in load order", func() {
			first := p.Assign("l1", "a")
			second := p.Assign("l1", "b")

			Convey("Then assignments are stable across later calls", func() {
				So(p.Assign("l1", "a"), ShouldEqual, first)
				So(p.Assign("l1", "b"), ShouldEqual, second)
				So(first, ShouldNotEqual, second)
			})

			Convey("And the same team ID in another league is independent", func() {
				So(p.Assign("l2", "a"), ShouldNotEqual, first)
			})
		})
	})
}
