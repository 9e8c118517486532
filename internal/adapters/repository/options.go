// Package repository defines the season store interface and errors.
package repository

// Option applies a configuration option to the SeasonStore.
type Option func(*SeasonStore)

// WithEventCapacity sets the initial per-league event log capacity.
func WithEventCapacity(capacity int) Option {
	return func(s *SeasonStore) {
		if capacity > 0 {
			s.eventCapacity = capacity
		}
	}
}
