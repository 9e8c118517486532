// Package worker commits bid events from the ingest queue to the season
// store, enforcing at-most-once semantics via the event-ID deduper.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/michael-fp/fp-chopped/internal/adapters/mq/queue"
	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/pkg/logger"
	"github.com/michael-fp/fp-chopped/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount  = 4
	poolShutdownTimeout = 10 * time.Second
)

// Event is what workers read off the queue.
type Event = model.BidEvent

// Appender commits one event to the season log.
type Appender interface {
	AppendEvent(ctx context.Context, e model.BidEvent) error
}

// Deduper guards at-most-once ingest.
type Deduper interface {
	SeenAndRecord(ctx context.Context, id string) bool
	Forget(ctx context.Context, id string)
}

// Worker drains the queue until its context ends.
type Worker struct {
	queue    queue.Queue
	appender Appender
	deduper  Deduper
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a worker with configuration options.
func New(q queue.Queue, appender Appender, deduper Deduper, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		appender: appender,
		deduper:  deduper,
		name:     "ingest-worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logger.Get().Named(w.name)
	return w
}

// Run processes events until ctx is canceled or Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			w.ingest(ctx, e)
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight event.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker shutdown timed out: %w", ctx.Err())
	}
}

// ingest commits one event. Duplicates and unknown leagues are dropped
// without failing the worker loop.
func (w *Worker) ingest(ctx context.Context, e Event) {
	if e.EventID == "" {
		// Upstream exports occasionally lack IDs; mint one so dedupe and
		// retry bookkeeping still work.
		e.EventID = uuid.NewString()
	}

	if w.deduper.SeenAndRecord(ctx, e.EventID) {
		metrics.RecordEventDuplicate()
		w.logger.Debug(ctx, "duplicate event dropped", logger.String("event_id", e.EventID))
		return
	}

	if err := w.appender.AppendEvent(ctx, e); err != nil {
		w.deduper.Forget(ctx, e.EventID)
		metrics.RecordEventRejected("append_failed")
		w.logger.Warn(ctx, "event rejected by season store",
			logger.String("event_id", e.EventID),
			logger.String("league_id", e.LeagueID),
			logger.Error(err),
		)
		return
	}
	metrics.RecordEventIngested()
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates and sizes the pool.
func NewPool(workerCount int, q queue.Queue, appender Appender, deduper Deduper) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}
	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("ingest-pool"),
	}
	for i := range p.workers {
		p.workers[i] = New(q, appender, deduper, WithName("ingest-worker-"+strconv.Itoa(i)))
	}
	return p
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "ingest pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown stops all workers, bounded by poolShutdownTimeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var firstErr error
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
