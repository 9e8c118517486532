// Package declutter resolves near-coincident line endpoints.
package declutter

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithThresholds sets the per-axis proximity thresholds in pixels.
func WithThresholds(x, y float64) Option {
	return func(e *Engine) {
		if x > 0 && y > 0 {
			e.thresholdX = x
			e.thresholdY = y
		}
	}
}

// WithSteps sets the per-axis nudge applied on each collision.
func WithSteps(x, y float64) Option {
	return func(e *Engine) {
		if x > 0 && y > 0 {
			e.stepX = x
			e.stepY = y
		}
	}
}
