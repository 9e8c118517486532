package config_test

import (
	"testing"

	"github.com/michael-fp/fp-chopped/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"*"})
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.PeriodHours, convey.ShouldEqual, 168)
			convey.So(cfg.AnimationMS, convey.ShouldEqual, 8_000)
			convey.So(cfg.FrameIntervalMS, convey.ShouldEqual, 33)
			convey.So(cfg.ChartWidth, convey.ShouldEqual, 960)
			convey.So(cfg.ChartHeight, convey.ShouldEqual, 540)
			convey.So(cfg.DeclutterThresholdX, convey.ShouldEqual, 18)
			convey.So(cfg.DeclutterThresholdY, convey.ShouldEqual, 14)
			convey.So(cfg.DeclutterStepX, convey.ShouldEqual, 6)
			convey.So(cfg.DeclutterStepY, convey.ShouldEqual, 16)
			convey.So(cfg.TensionMin, convey.ShouldEqual, 0.3)
			convey.So(cfg.TensionMax, convey.ShouldEqual, 0.6)
		})

		convey.Convey("Then the season epoch is unset until configured", func() {
			convey.So(cfg.SeasonEpoch, convey.ShouldEqual, 0)
			convey.So(cfg.SeasonFile, convey.ShouldBeEmpty)
		})
	})
}
