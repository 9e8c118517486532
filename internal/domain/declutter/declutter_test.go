package declutter_test

import (
	"math"
	"testing"

	"github.com/michael-fp/fp-chopped/internal/domain/declutter"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEngine_Resolve(t *testing.T) {
	Convey("Given an engine with default thresholds", t, func() {
		e := declutter.New()

		Convey("When candidates are far apart", func() {
			offsets := e.Resolve([]declutter.Point{
				{X: 0, Y: 0},
				{X: 100, Y: 0},
				{X: 0, Y: 100},
			})

			Convey("Then nobody moves", func() {
				for _, o := range offsets {
					So(o, ShouldResemble, declutter.Offset{})
				}
			})
		})

		Convey("When four endpoints coincide exactly", func() {
			pts := []declutter.Point{
				{X: 400, Y: 120},
				{X: 400, Y: 120},
				{X: 400, Y: 120},
				{X: 400, Y: 120},
			}
			offsets := e.Resolve(pts)

			Convey("Then the first stays put and later ones stack diagonally", func() {
				So(offsets[0], ShouldResemble, declutter.Offset{})
				So(offsets[1], ShouldResemble, declutter.Offset{DX: 6, DY: 16})
				So(offsets[2], ShouldResemble, declutter.Offset{DX: 12, DY: 32})
				So(offsets[3], ShouldResemble, declutter.Offset{DX: 18, DY: 48})
			})

			Convey("And every pair ends up separated on at least one axis", func() {
				for i := range pts {
					for j := i + 1; j < len(pts); j++ {
						dx := math.Abs((pts[i].X + offsets[i].DX) - (pts[j].X + offsets[j].DX))
						dy := math.Abs((pts[i].Y + offsets[i].DY) - (pts[j].Y + offsets[j].DY))
						So(dx >= 18 || dy >= 14, ShouldBeTrue)
					}
				}
			})

			Convey("And re-running on the same input yields identical offsets", func() {
				So(e.Resolve(pts), ShouldResemble, offsets)
			})
		})

		Convey("When only one axis is close", func() {
			offsets := e.Resolve([]declutter.Point{
				{X: 400, Y: 120},
				{X: 405, Y: 200}, // near in x, far in y
			})

			Convey("Then no offset is applied", func() {
				So(offsets[1], ShouldResemble, declutter.Offset{})
			})
		})

		Convey("When the candidate list is empty", func() {
			So(e.Resolve(nil), ShouldBeEmpty)
		})
	})

	Convey("Given an engine with custom thresholds and steps", t, func() {
		e := declutter.New(
			declutter.WithThresholds(10, 10),
			declutter.WithSteps(2, 12),
		)

		Convey("Then collisions use the configured geometry", func() {
			offsets := e.Resolve([]declutter.Point{
				{X: 0, Y: 0},
				{X: 4, Y: 4},
			})
			So(offsets[1], ShouldResemble, declutter.Offset{DX: 2, DY: 12})
		})
	})
}
