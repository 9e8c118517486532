package seedseason

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/michael-fp/fp-chopped/pkg/logger"
)

const outputFilePermission = 0600

// Run generates a season, writes it to the configured file, and, when a
// base URL is set, replays the events against a running instance.
func Run(ctx context.Context, cfg *Config) error {
	lg := logger.Get()

	season, err := Generate(cfg)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(season, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode season: %w", err)
	}
	if err := os.WriteFile(cfg.OutputFile, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write season file: %w", err)
	}

	teams, events := 0, 0
	for _, lr := range season.Leagues {
		teams += len(lr.Teams)
		events += len(lr.Events)
	}
	lg.Info(ctx, "season file written",
		logger.String("path", cfg.OutputFile),
		logger.Int("leagues", len(season.Leagues)),
		logger.Int("teams", teams),
		logger.Int("events", events),
	)

	if cfg.BaseURL == "" {
		return nil
	}

	// Live replay: the instance must have loaded the same season file so
	// the rosters exist before the events arrive.
	poster := newEventPoster(cfg.BaseURL, cfg.Timeout)
	accepted, failed := poster.PostSeason(ctx, season, cfg.Verbose)
	lg.Info(ctx, "event replay finished",
		logger.String("url", cfg.BaseURL),
		logger.Int("accepted", accepted),
		logger.Int("failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d events were not accepted", failed)
	}
	return nil
}

// ShowHelp prints usage information for the seed-season tool.
func ShowHelp() {
	os.Stdout.WriteString(`Season Seed Tool
================

Generates a synthetic season file (leagues, rosters, bid events) for the
budget replay engine, and can replay the events against a running instance.

Usage:
  go run cmd/seed-season/main.go [options]

Options:
  -output string
        Season JSON output file (default "season.json")
  -url string
        Base URL of a running instance; when set, generated events are
        POSTed to /api/events after the file is written
  -leagues int
        Number of leagues to generate (default 1)
  -teams int
        Teams per league (default 12)
  -periods int
        Season length in periods (default 38)
  -cap float
        Starting budget per team (default 1000)
  -chopped float
        Fraction of each roster eliminated by season end (default 0.5)
  -epoch int
        Unix time period 1 opens at (default: now minus the season length)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Log every posted event
  -help
        Show this help message

Examples:
  # Write season.json with the defaults
  go run cmd/seed-season/main.go

  # Generate a big dataset and replay it against a local instance
  go run cmd/seed-season/main.go -teams 40 -chopped 0.7 -url http://localhost:8090
`)
}
