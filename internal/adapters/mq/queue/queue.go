// Package queue defines the contract for buffering bid events between the
// ingest surfaces (HTTP, season file loader) and the workers that commit
// them to the season store.
package queue

import (
	"context"
	"sync"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/pkg/metrics"
)

// Default queue configuration constants.
const defaultCapacity = 10_000

// Event is the payload type flowing through the queue.
type Event = model.BidEvent

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an event. Returns false on backpressure or after Close.
	Enqueue(ctx context.Context, e Event) bool

	// Dequeue returns a channel that receives events until the queue is
	// closed and drained.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the current number of buffered events.
	Len(ctx context.Context) int

	// Close stops accepting events; buffered ones still drain.
	Close() error
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	events chan Event

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{}
	capacity := defaultCapacity
	for _, opt := range opts {
		opt(&capacity)
	}
	q.events = make(chan Event, capacity)
	return q
}

// Enqueue adds an event without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.events <- e:
		metrics.UpdateQueueDepth(len(q.events))
		return true
	case <-ctx.Done():
		return false
	default:
		metrics.RecordEventRejected("queue_full")
		return false
	}
}

// Dequeue returns the consumption channel. Multiple workers may share it.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for e := range q.events {
			select {
			case out <- e:
				metrics.UpdateQueueDepth(len(q.events))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the number of buffered events.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.events)
}

// Close stops accepting new events.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.closed = true
	close(q.events)
	return nil
}
