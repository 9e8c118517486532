// Package queue defines the contract for buffering bid events.
package queue

// Option applies a configuration option to the InMemoryQueue.
type Option func(capacity *int)

// WithCapacity sets the maximum number of buffered events.
func WithCapacity(capacity int) Option {
	return func(c *int) {
		if capacity > 0 {
			*c = capacity
		}
	}
}
