// Package worker commits bid events from the ingest queue to the season store.
package worker

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker's logging name.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}
