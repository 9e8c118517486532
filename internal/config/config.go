// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors are wrapped via this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// AllowedOrigins configures CORS for the API and websocket surfaces.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// SeasonFile is an optional season JSON file loaded on startup.
	SeasonFile string `koanf:"season_file"`

	// QueueSize bounds the in-memory ingest queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the event-ID dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	// SeasonEpoch is the unix time at which period 1 opens. It depends on
	// the season calendar, so it is configuration, never a constant.
	SeasonEpoch int64 `koanf:"season_epoch"`

	// PeriodHours is the fixed width of one period window.
	PeriodHours int `koanf:"period_hours"`

	// AnimationMS is the wall-clock budget of one full playback.
	AnimationMS int `koanf:"animation_ms"`

	// FrameIntervalMS paces the websocket frame loop.
	FrameIntervalMS int `koanf:"frame_interval_ms"`

	// ChartWidth and ChartHeight size the render canvas.
	ChartWidth  float64 `koanf:"chart_width"`
	ChartHeight float64 `koanf:"chart_height"`

	// Declutter geometry: per-axis proximity thresholds and nudge steps.
	DeclutterThresholdX float64 `koanf:"declutter_threshold_x"`
	DeclutterThresholdY float64 `koanf:"declutter_threshold_y"`
	DeclutterStepX      float64 `koanf:"declutter_step_x"`
	DeclutterStepY      float64 `koanf:"declutter_step_y"`

	// TensionMin and TensionMax bound curve control-point tension.
	TensionMin float64 `koanf:"tension_min"`
	TensionMax float64 `koanf:"tension_max"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8090",
		AllowedOrigins:  []string{"*"},
		QueueSize:       10_000,
		WorkerCount:     4,
		DedupeSize:      50_000,
		PeriodHours:     168, // one gameweek
		AnimationMS:     8_000,
		FrameIntervalMS: 33,
		ChartWidth:      960,
		ChartHeight:     540,

		DeclutterThresholdX: 18,
		DeclutterThresholdY: 14,
		DeclutterStepX:      6,
		DeclutterStepY:      16,

		TensionMin: 0.3,
		TensionMax: 0.6,
	}
}
