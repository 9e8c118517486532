// Package seedseason generates synthetic season files for local
// development and ingest load testing.
package seedseason

import (
	"fmt"
	"time"
)

// Config controls season generation.
type Config struct {
	// OutputFile is the season JSON destination.
	OutputFile string

	// BaseURL, when set, additionally POSTs the generated events to a
	// running instance that has already loaded the same season file.
	BaseURL string

	Leagues        int
	TeamsPerLeague int
	Periods        int
	Cap            float64

	// ChoppedRate is the fraction of teams eliminated by season end.
	ChoppedRate float64

	// SeasonEpoch is the unix time period 1 opens at.
	SeasonEpoch int64

	Timeout time.Duration
	Verbose bool
}

// validate checks configuration bounds.
func (c *Config) validate() error {
	switch {
	case c.OutputFile == "":
		return fmt.Errorf("output file is required")
	case c.Leagues < 1:
		return fmt.Errorf("leagues must be >= 1")
	case c.TeamsPerLeague < 2:
		return fmt.Errorf("teams per league must be >= 2")
	case c.Periods < 1:
		return fmt.Errorf("periods must be >= 1")
	case c.Cap <= 0:
		return fmt.Errorf("cap must be positive")
	case c.ChoppedRate < 0 || c.ChoppedRate >= 1:
		return fmt.Errorf("chopped rate must be in [0,1)")
	}
	return nil
}
