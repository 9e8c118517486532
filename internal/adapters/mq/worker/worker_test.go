package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/michael-fp/fp-chopped/internal/adapters/mq/queue"
	"github.com/michael-fp/fp-chopped/internal/adapters/mq/worker"
	"github.com/michael-fp/fp-chopped/internal/adapters/repository"
	"github.com/michael-fp/fp-chopped/internal/domain/dedupe"
	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

// countingAppender wraps a store and counts append attempts.
type countingAppender struct {
	mu    sync.Mutex
	store *repository.SeasonStore
	calls int
}

func (a *countingAppender) AppendEvent(ctx context.Context, e model.BidEvent) error {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	return a.store.AppendEvent(ctx, e)
}

func (a *countingAppender) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func TestWorker_Ingest(t *testing.T) {
	ctx := context.Background()

	Convey("Given a worker over a store with one league", t, func() {
		store := repository.NewSeasonStore()
		store.PutLeague(ctx, model.League{LeagueID: "l1", Cap: 1000})
		appender := &countingAppender{store: store}
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		w := worker.New(q, appender, dedupe.New())

		runCtx, cancel := context.WithCancel(ctx)
		go w.Run(runCtx)
		Reset(func() {
			cancel()
			_ = w.Shutdown(context.Background())
		})

		Convey("When a valid event is enqueued", func() {
			So(q.Enqueue(ctx, worker.Event{EventID: "e1", LeagueID: "l1", TeamID: "a", Period: 1, Amount: 50}), ShouldBeTrue)

			Convey("Then it lands in the season log", func() {
				So(waitFor(func() bool { return store.EventCount(ctx) == 1 }), ShouldBeTrue)
			})
		})

		Convey("When the same event ID arrives twice", func() {
			e := worker.Event{EventID: "dup", LeagueID: "l1", TeamID: "a", Period: 1, Amount: 50}
			So(q.Enqueue(ctx, e), ShouldBeTrue)
			So(q.Enqueue(ctx, e), ShouldBeTrue)

			Convey("Then only one copy is committed", func() {
				So(waitFor(func() bool { return appender.count() == 1 }), ShouldBeTrue)
				time.Sleep(20 * time.Millisecond) // give the duplicate a chance to leak
				So(store.EventCount(ctx), ShouldEqual, 1)
			})
		})

		Convey("When an event references an unknown league", func() {
			So(q.Enqueue(ctx, worker.Event{EventID: "bad", LeagueID: "ghost"}), ShouldBeTrue)
			So(q.Enqueue(ctx, worker.Event{EventID: "good", LeagueID: "l1", TeamID: "a", Period: 1}), ShouldBeTrue)

			Convey("Then it is dropped and later events still flow", func() {
				So(waitFor(func() bool { return store.EventCount(ctx) == 1 }), ShouldBeTrue)
				events, err := store.Events(ctx, "l1")
				So(err, ShouldBeNil)
				So(events[0].EventID, ShouldEqual, "good")
			})
		})

		Convey("When an event arrives without an ID", func() {
			So(q.Enqueue(ctx, worker.Event{LeagueID: "l1", TeamID: "a", Period: 2, Amount: 10}), ShouldBeTrue)

			Convey("Then one is minted and the event is committed", func() {
				So(waitFor(func() bool { return store.EventCount(ctx) == 1 }), ShouldBeTrue)
				events, _ := store.Events(ctx, "l1")
				So(events[0].EventID, ShouldNotBeEmpty)
			})
		})
	})
}

func TestPool_Lifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pool of three workers", t, func() {
		store := repository.NewSeasonStore()
		store.PutLeague(ctx, model.League{LeagueID: "l1", Cap: 1000})
		q := queue.NewInMemoryQueue()
		p := worker.NewPool(3, q, store, dedupe.New())
		p.Start(ctx)

		Convey("When a burst of events is enqueued", func() {
			for i := 0; i < 50; i++ {
				So(q.Enqueue(ctx, worker.Event{LeagueID: "l1", TeamID: "a", Period: 1, Amount: 1}), ShouldBeTrue)
			}

			Convey("Then every event is committed exactly once", func() {
				So(waitFor(func() bool { return store.EventCount(ctx) == 50 }), ShouldBeTrue)
			})

			Convey("And shutdown completes cleanly", func() {
				So(waitFor(func() bool { return store.EventCount(ctx) == 50 }), ShouldBeTrue)
				So(p.Shutdown(ctx), ShouldBeNil)
			})
		})
	})
}
