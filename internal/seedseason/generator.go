package seedseason

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/michael-fp/fp-chopped/internal/domain/model"
	"github.com/michael-fp/fp-chopped/internal/loader"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	periodSeconds      = int64(168 * time.Hour / time.Second)
)

// Bid sizing relative to the cap: each bid spends a fraction of what the
// team still holds so budgets never go negative.
const (
	minBidFraction = 0.05
	maxBidFraction = 0.35
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomBetween returns a random float64 in [lo, hi).
func randomBetween(lo, hi float64) float64 {
	return lo + getRandomFloat()*(hi-lo)
}

// Generate builds a synthetic season: every team starts at the cap,
// spends through random bid events, and a ChoppedRate fraction of each
// roster ends the season eliminated.
func Generate(cfg *Config) (loader.SeasonFile, error) {
	if err := cfg.validate(); err != nil {
		return loader.SeasonFile{}, err
	}

	season := loader.SeasonFile{
		Leagues: make([]loader.LeagueRecord, 0, cfg.Leagues),
	}
	for i := 0; i < cfg.Leagues; i++ {
		season.Leagues = append(season.Leagues, generateLeague(cfg, i+1))
	}
	return season, nil
}

func generateLeague(cfg *Config, n int) loader.LeagueRecord {
	lr := loader.LeagueRecord{
		LeagueID: uuid.New().String(),
		Name:     fmt.Sprintf("Synthetic League %d", n),
		Cap:      cfg.Cap,
		Teams:    make([]loader.TeamRecord, 0, cfg.TeamsPerLeague),
	}

	chopped := int(float64(cfg.TeamsPerLeague) * cfg.ChoppedRate)
	for i := 0; i < cfg.TeamsPerLeague; i++ {
		team, events := generateTeam(cfg, i, i < chopped)
		lr.Teams = append(lr.Teams, team)
		lr.Events = append(lr.Events, events...)
	}
	return lr
}

func generateTeam(cfg *Config, index int, eliminated bool) (loader.TeamRecord, []loader.EventRecord) {
	teamID := uuid.New().String()
	name := fmt.Sprintf("Team %02d", index+1)

	// Eliminated teams stop bidding at their elimination period; the rest
	// spend across the whole season.
	lastPeriod := cfg.Periods
	if eliminated {
		lastPeriod = 1 + int(getRandomFloat()*float64(cfg.Periods-1))
	}

	remaining := cfg.Cap
	var events []loader.EventRecord
	for period := 1; period <= lastPeriod; period++ {
		// Not every period carries a bid.
		if getRandomFloat() < 0.4 {
			continue
		}
		amount := roundCents(remaining * randomBetween(minBidFraction, maxBidFraction))
		if amount <= 0 {
			break
		}
		remaining = roundCents(remaining - amount)

		progress := getRandomFloat()
		events = append(events, loader.EventRecord{
			EventID: uuid.New().String(),
			TeamID:  teamID,
			Period:  period,
			Amount:  amount,
			Status:  model.StatusComplete,
			Type:    model.TypeBudgetBid,
			TS:      cfg.SeasonEpoch + int64(period-1)*periodSeconds + int64(progress*float64(periodSeconds)),
		})
	}

	tr := loader.TeamRecord{
		TeamID:       teamID,
		DisplayName:  name,
		Initials:     fmt.Sprintf("T%d", index+1),
		CurrentValue: remaining,
		Eliminated:   eliminated,
	}
	if eliminated {
		p := lastPeriod
		tr.EliminatedPeriod = &p
	}
	return tr, events
}

// roundCents keeps generated budgets to two decimal places.
func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
