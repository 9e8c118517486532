package svg

// Option configures an Encoder.
type Option func(*Encoder)

// WithBackground sets the document background fill.
func WithBackground(color string) Option {
	return func(e *Encoder) {
		e.background = color
	}
}

// WithFontFamily sets the font family used for text primitives.
func WithFontFamily(family string) Option {
	return func(e *Encoder) {
		e.fontFamily = family
	}
}
