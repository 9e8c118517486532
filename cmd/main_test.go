package main

import (
	"context"
	"os"
	"testing"
	"time"

	app "github.com/michael-fp/fp-chopped/internal/app"
	"github.com/michael-fp/fp-chopped/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("CHOPPED_ADDR", ":8080")
			_ = os.Setenv("CHOPPED_QUEUE_SIZE", "1000")
			_ = os.Setenv("CHOPPED_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("CHOPPED_ADDR")
				_ = os.Unsetenv("CHOPPED_QUEUE_SIZE")
				_ = os.Unsetenv("CHOPPED_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithWorkerCount(2),
					app.WithQueueSize(128),
					app.WithSeason(1755216000, 168*time.Hour),
					app.WithAnimationDuration(4*time.Second),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}
