// Package dedupe guards bid-event ingest against replays of the same event
// ID. Upstream exports the season log in overlapping period chunks, so the
// same completed bid can arrive more than once; the log itself must stay
// append-once.
package dedupe

import (
	"context"
	"sync"
)

// Default capacity covers several seasons of bid events.
const defaultMaxSize = 50_000

// Deduper records seen event IDs to keep ingest at-most-once.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Forget removes an ID so a failed ingest can be retried.
	Forget(ctx context.Context, id string)

	// Size returns the number of IDs currently tracked.
	Size() int
}

// ringDeduper implements Deduper with a map for membership and a fixed-size
// ring for FIFO eviction once capacity is reached.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int // ring slot the next recorded ID overwrites
	maxSize int
}

// New creates a Deduper with configuration options.
func New(opts ...Option) Deduper {
	d := &ringDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.maxSize)
	d.ring = make([]string, d.maxSize)
	return d
}

func (d *ringDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	// Evict whatever occupied this slot a full lap ago.
	if old := d.ring[d.next]; old != "" {
		delete(d.seen, old)
	}
	d.ring[d.next] = id
	d.next = (d.next + 1) % d.maxSize
	d.seen[id] = struct{}{}
	return false
}

func (d *ringDeduper) Forget(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	for i, v := range d.ring {
		if v == id {
			d.ring[i] = ""
			break
		}
	}
}

func (d *ringDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
