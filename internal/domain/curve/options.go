// Package curve converts an ordered point sequence into a smooth cubic path.
package curve

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithTensionRange bounds segment tension. Values outside (0,1) or an
// inverted pair are ignored.
func WithTensionRange(minTension, maxTension float64) Option {
	return func(b *Builder) {
		if minTension > 0 && maxTension < 1 && maxTension > minTension {
			b.minTension = minTension
			b.maxTension = maxTension
		}
	}
}

// WithDeltaScale sets the value delta at which tension saturates,
// typically a fraction of the league cap.
func WithDeltaScale(scale float64) Option {
	return func(b *Builder) {
		if scale > 0 {
			b.deltaScale = scale
		}
	}
}
