// Package service wires the season store, ingest pipeline, timeline
// reconstruction, and frame composition into the one object the HTTP
// adapters depend on.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	eventqueue "github.com/michael-fp/fp-chopped/internal/adapters/mq/queue"
	workerpool "github.com/michael-fp/fp-chopped/internal/adapters/mq/worker"
	"github.com/michael-fp/fp-chopped/internal/adapters/repository"
	"github.com/michael-fp/fp-chopped/internal/anim"
	"github.com/michael-fp/fp-chopped/internal/domain/curve"
	"github.com/michael-fp/fp-chopped/internal/domain/declutter"
	"github.com/michael-fp/fp-chopped/internal/domain/dedupe"
	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/internal/domain/timeline"
	"github.com/michael-fp/fp-chopped/internal/loader"
	"github.com/michael-fp/fp-chopped/internal/render"
	"github.com/michael-fp/fp-chopped/pkg/logger"
	"github.com/michael-fp/fp-chopped/pkg/metrics"
)

// Service implements the API dependencies for the replay engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   *repository.SeasonStore
	deduper dedupe.Deduper
	queue   *eventqueue.InMemoryQueue
	pool    *workerpool.Pool
	recon   *timeline.Reconstructor
	palette *render.Palette

	// Configuration
	workerCount  int
	queueSize    int
	dedupeSize   int
	seasonEpoch  int64
	periodLength time.Duration
	animDuration time.Duration
	canvasW      float64
	canvasH      float64
	curveOpts    []curve.Option
	declutOpts   []declutter.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithSeason sets the period-1 epoch and the period window width used to
// place events on the continuous period axis.
func WithSeason(epoch int64, periodLength time.Duration) Option {
	return func(s *Service) {
		s.seasonEpoch = epoch
		if periodLength > 0 {
			s.periodLength = periodLength
		}
	}
}

// WithAnimationDuration sets the wall-clock length of a full playback.
func WithAnimationDuration(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.animDuration = d
		}
	}
}

// WithCanvas sets the render canvas dimensions.
func WithCanvas(width, height float64) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.canvasW = width
			s.canvasH = height
		}
	}
}

// WithCurveOptions forwards options to every curve builder the service
// creates.
func WithCurveOptions(opts ...curve.Option) Option {
	return func(s *Service) {
		s.curveOpts = append(s.curveOpts, opts...)
	}
}

// WithDeclutterOptions forwards options to every declutter engine the
// service creates.
func WithDeclutterOptions(opts ...declutter.Option) Option {
	return func(s *Service) {
		s.declutOpts = append(s.declutOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  4,
		queueSize:    10_000,
		dedupeSize:   50_000,
		periodLength: 168 * time.Hour,
		animDuration: 8 * time.Second,
		canvasW:      960,
		canvasH:      540,
		logger:       nil, // Will be replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting replay service...")

	s.store = repository.NewSeasonStore()
	s.deduper = dedupe.New(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.recon = timeline.New(
		timeline.WithEpoch(s.seasonEpoch),
		timeline.WithPeriodLength(s.periodLength),
	)
	s.palette = render.NewPalette()

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.store, s.deduper)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "replay service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service. Buffered events drain through
// the workers before the pool stops.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping replay service...")

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "replay service stopped")
}

// LoadSeason reads a season file into the store and ingest queue.
func (s *Service) LoadSeason(ctx context.Context, path string) (loader.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return loader.Summary{}, ErrNotStarted
	}
	return loader.New(s.store, s.queue).LoadFile(ctx, path)
}

// Enqueue submits a bid event for asynchronous ingestion. Validation here
// covers shape only; dedupe and store membership are the workers' job.
func (s *Service) Enqueue(ctx context.Context, e model.BidEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	if e.LeagueID == "" || e.TeamID == "" {
		metrics.RecordEventRejected("missing_id")
		return fmt.Errorf("%w: league and team ids are required", ErrInvalidEvent)
	}
	if e.Period < 1 {
		metrics.RecordEventRejected("bad_period")
		return fmt.Errorf("%w: period must be >= 1", ErrInvalidEvent)
	}
	if e.Amount < 0 {
		metrics.RecordEventRejected("negative_amount")
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidEvent)
	}

	if !s.queue.Enqueue(ctx, e) {
		return ErrQueueFull
	}
	return nil
}

// Leagues returns every league in insertion order.
func (s *Service) Leagues(ctx context.Context) []model.League {
	return s.store.Leagues(ctx)
}

// League returns one league by ID.
func (s *Service) League(ctx context.Context, leagueID string) (model.League, error) {
	return s.store.League(ctx, leagueID)
}

// Roster returns a league's teams in insertion order.
func (s *Service) Roster(ctx context.Context, leagueID string) ([]model.Team, error) {
	return s.store.Roster(ctx, leagueID)
}

// BuildTimelines replays a league's event log into per-team timelines.
// The log is immutable during a replay, so rebuilding from scratch is
// always safe and always yields the same result for the same log.
func (s *Service) BuildTimelines(ctx context.Context, leagueID string) (map[string]model.Timeline, []model.Team, model.League, error) {
	league, err := s.store.League(ctx, leagueID)
	if err != nil {
		return nil, nil, model.League{}, err
	}
	roster, err := s.store.Roster(ctx, leagueID)
	if err != nil {
		return nil, nil, model.League{}, err
	}
	events, err := s.store.Events(ctx, leagueID)
	if err != nil {
		return nil, nil, model.League{}, err
	}

	start := time.Now()
	timelines := s.recon.Build(ctx, league, roster, events)
	metrics.RecordTimelineRebuild(float64(time.Since(start).Microseconds()) / 1000.0)

	return timelines, roster, league, nil
}

// Composer creates a frame composer calibrated to a league's cap.
func (s *Service) Composer(league model.League) *render.Composer {
	return render.NewComposer(
		league.Cap,
		s.palette,
		declutter.New(s.declutOpts...),
		render.WithCanvas(s.canvasW, s.canvasH),
		render.WithCurveOptions(s.curveOpts...),
	)
}

// NewController builds an animation controller over a league's current
// timelines. The caller owns the controller's lifecycle.
func (s *Service) NewController(ctx context.Context, leagueID string, sink anim.Sink, sched anim.Scheduler, opts ...anim.Option) (*anim.Controller, *render.Composer, error) {
	timelines, roster, league, err := s.BuildTimelines(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]anim.Option{anim.WithDuration(s.animDuration)}, opts...)
	ctrl := anim.NewController(timelines, roster, sink, sched, opts...)
	return ctrl, s.Composer(league), nil
}

// Snapshot composes one frame of a league's replay at a fixed progress,
// without an animation session.
func (s *Service) Snapshot(ctx context.Context, leagueID string, req anim.SnapshotRequest) (render.Frame, error) {
	timelines, roster, league, err := s.BuildTimelines(ctx, leagueID)
	if err != nil {
		return render.Frame{}, err
	}

	frame := anim.Snapshot(timelines, roster, req)

	start := time.Now()
	out := s.Composer(league).Compose(frame)
	metrics.RecordFrameComposed(float64(time.Since(start).Microseconds()) / 1000.0)
	return out, nil
}

// AnimationDuration exposes the configured playback length.
func (s *Service) AnimationDuration() time.Duration {
	return s.animDuration
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		storedEvents := s.store.EventCount(ctx)

		stats["queueLength"] = queueLen
		stats["storedEvents"] = storedEvents
		stats["leagues"] = len(s.store.Leagues(ctx))

		metrics.UpdateQueueDepth(queueLen)
		metrics.UpdateStoredEvents(storedEvents)
	}

	return stats
}
