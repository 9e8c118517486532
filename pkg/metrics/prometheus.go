// Package metrics provides Prometheus metrics for the chopped-chart service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "fpchopped"
)

// Ingest metrics.
var (
	eventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_ingested_total",
		Help:      "Bid events accepted into the season log.",
	})
	eventsDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_duplicate_total",
		Help:      "Bid events dropped by the ingest deduper.",
	})
	eventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_rejected_total",
		Help:      "Bid events rejected before reaching the season log.",
	}, []string{"reason"})
	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ingest_queue_depth",
		Help:      "Events currently sitting in the ingest queue.",
	})
	storedEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "season_events",
		Help:      "Events held in the season store across all leagues.",
	})
)

// Reconstruction and rendering metrics.
var (
	timelineRebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timeline_rebuilds_total",
		Help:      "Full timeline reconstructions performed.",
	})
	timelineRebuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "timeline_rebuild_duration_ms",
		Help:      "Wall time of one full reconstruction in milliseconds.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
	})
	framesComposed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_composed_total",
		Help:      "Animation frames composed into draw instructions.",
	})
	frameComposeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "frame_compose_duration_ms",
		Help:      "Wall time of one frame composition in milliseconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
)

// Playback and session metrics.
var (
	playbacksStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "playbacks_started_total",
		Help:      "Animations started from idle.",
	})
	playbacksCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "playbacks_completed_total",
		Help:      "Animations that ran to natural completion.",
	})
	streamSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stream_sessions",
		Help:      "Live websocket playback sessions.",
	})
)

// HTTP metrics.
var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})
)

// RecordEventIngested counts one accepted bid event.
func RecordEventIngested() { eventsIngested.Inc() }

// RecordEventDuplicate counts one replayed event dropped by dedupe.
func RecordEventDuplicate() { eventsDuplicate.Inc() }

// RecordEventRejected counts one rejected event with its reason.
func RecordEventRejected(reason string) { eventsRejected.WithLabelValues(reason).Inc() }

// UpdateQueueDepth tracks the current ingest queue length.
func UpdateQueueDepth(n int) { queueDepth.Set(float64(n)) }

// UpdateStoredEvents tracks the season store's total event count.
func UpdateStoredEvents(n int) { storedEvents.Set(float64(n)) }

// RecordTimelineRebuild tracks one full reconstruction.
func RecordTimelineRebuild(durationMs float64) {
	timelineRebuilds.Inc()
	timelineRebuildDuration.Observe(durationMs)
}

// RecordFrameComposed tracks one composed frame.
func RecordFrameComposed(durationMs float64) {
	framesComposed.Inc()
	frameComposeDuration.Observe(durationMs)
}

// RecordPlaybackStarted counts one Start transition.
func RecordPlaybackStarted() { playbacksStarted.Inc() }

// RecordPlaybackCompleted counts one natural completion.
func RecordPlaybackCompleted() { playbacksCompleted.Inc() }

// IncStreamSessions tracks a viewer attaching.
func IncStreamSessions() { streamSessions.Inc() }

// DecStreamSessions tracks a viewer detaching.
func DecStreamSessions() { streamSessions.Dec() }

// RecordHTTPRequest counts one served request.
func RecordHTTPRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration tracks one request's latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
