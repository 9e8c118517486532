package view_test

import (
	"reflect"
	"testing"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/internal/domain/view"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApply(t *testing.T) {
	Convey("Given timelines for two leagues with active and chopped teams", t, func() {
		roster := []model.Team{
			{LeagueID: "l1", TeamID: "a", CurrentValue: 550},
			{LeagueID: "l1", TeamID: "b", Eliminated: true, CurrentValue: 200},
			{LeagueID: "l2", TeamID: "c", CurrentValue: 800},
			{LeagueID: "l1", TeamID: "d", CurrentValue: 550},
		}
		timelines := map[string]model.Timeline{
			"a": {{Value: 1000}, {Period: 2, Value: 550}},
			"b": {{Value: 1000}, {Period: 3, Value: 200}},
			"c": {{Value: 1000}, {Period: 1, Value: 800}},
			"d": {{Value: 1000}, {Period: 4, Value: 550}},
		}

		Convey("When filtering to all leagues and all statuses", func() {
			got := view.Apply(timelines, roster, view.ScopeAll, "", view.StatusAll)

			Convey("Then teams order by latest value desc with roster-order ties", func() {
				So(got, ShouldResemble, []view.Selection{
					{LeagueID: "l2", TeamID: "c"},
					{LeagueID: "l1", TeamID: "a"},
					{LeagueID: "l1", TeamID: "d"},
					{LeagueID: "l1", TeamID: "b"},
				})
			})
		})

		Convey("When filtering to a single league", func() {
			got := view.Apply(timelines, roster, view.ScopeLeague, "l1", view.StatusAll)

			Convey("Then teams from other leagues are excluded", func() {
				So(got, ShouldHaveLength, 3)
				for _, sel := range got {
					So(sel.LeagueID, ShouldEqual, "l1")
				}
			})
		})

		Convey("When filtering by remaining status", func() {
			got := view.Apply(timelines, roster, view.ScopeLeague, "l1", view.StatusRemaining)

			Convey("Then chopped teams are excluded", func() {
				So(got, ShouldResemble, []view.Selection{
					{LeagueID: "l1", TeamID: "a"},
					{LeagueID: "l1", TeamID: "d"},
				})
			})
		})

		Convey("When filtering by chopped status", func() {
			got := view.Apply(timelines, roster, view.ScopeLeague, "l1", view.StatusChopped)

			Convey("Then only eliminated teams remain", func() {
				So(got, ShouldResemble, []view.Selection{{LeagueID: "l1", TeamID: "b"}})
			})
		})

		Convey("When a rostered team has no timeline", func() {
			extra := append(roster, model.Team{LeagueID: "l1", TeamID: "e", CurrentValue: 999})
			got := view.Apply(timelines, extra, view.ScopeAll, "", view.StatusAll)

			Convey("Then it is skipped", func() {
				So(got, ShouldHaveLength, 4)
			})
		})

		Convey("When applying any filter", func() {
			before := map[string]model.Timeline{}
			for id, tl := range timelines {
				before[id] = tl.Clone()
			}
			view.Apply(timelines, roster, view.ScopeLeague, "l1", view.StatusRemaining)

			Convey("Then the source timelines are untouched", func() {
				So(reflect.DeepEqual(timelines, before), ShouldBeTrue)
			})
		})

		Convey("When the inputs are empty", func() {
			So(view.Apply(nil, nil, view.ScopeAll, "", view.StatusAll), ShouldBeEmpty)
		})
	})
}
