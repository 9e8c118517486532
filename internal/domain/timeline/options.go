// Package timeline rebuilds remaining-budget histories from the bid event log.
package timeline

import "time"

// Option applies a configuration option to the Reconstructor.
type Option func(*Reconstructor)

// WithEpoch sets the unix time at which period 1 opens.
func WithEpoch(epoch int64) Option {
	return func(r *Reconstructor) {
		if epoch > 0 {
			r.epoch = epoch
		}
	}
}

// WithPeriodLength sets the fixed width of one period window.
func WithPeriodLength(d time.Duration) Option {
	return func(r *Reconstructor) {
		if d > 0 {
			r.periodLength = d
		}
	}
}
