package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/michael-fp/fp-chopped/internal/seedseason"
	"github.com/michael-fp/fp-chopped/pkg/logger"
)

// Default configuration constants.
const (
	defaultLeagues     = 1
	defaultTeams       = 12
	defaultPeriods     = 38
	defaultCap         = 1000.0
	defaultChoppedRate = 0.5
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
	periodLength       = 168 * time.Hour
)

func main() {
	var (
		outputFile  = flag.String("output", "season.json", "Output file for the generated season")
		baseURL     = flag.String("url", "", "Base URL of a running instance to POST events to (optional)")
		leagues     = flag.Int("leagues", defaultLeagues, "Number of leagues to generate")
		teams       = flag.Int("teams", defaultTeams, "Number of teams per league")
		periods     = flag.Int("periods", defaultPeriods, "Number of periods in the season")
		cap         = flag.Float64("cap", defaultCap, "Starting budget for every team")
		choppedRate = flag.Float64("chopped", defaultChoppedRate, "Fraction of teams eliminated by season end")
		epoch       = flag.Int64("epoch", 0, "Unix time period 1 opens at (default: now minus season length)")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedseason.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// A zero epoch places the season so its final period just closed.
	seasonEpoch := *epoch
	if seasonEpoch == 0 {
		seasonEpoch = time.Now().Add(-time.Duration(*periods) * periodLength).Unix()
	}

	config := &seedseason.Config{
		OutputFile:     *outputFile,
		BaseURL:        *baseURL,
		Leagues:        *leagues,
		TeamsPerLeague: *teams,
		Periods:        *periods,
		Cap:            *cap,
		ChoppedRate:    *choppedRate,
		SeasonEpoch:    seasonEpoch,
		Timeout:        *timeout,
		Verbose:        *verbose,
	}

	if err := seedseason.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		return
	}
}
