package seedseason

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/michael-fp/fp-chopped/internal/loader"
	"github.com/michael-fp/fp-chopped/pkg/logger"
)

// eventPoster replays generated events against a running instance.
type eventPoster struct {
	client  *http.Client
	baseURL string
}

func newEventPoster(baseURL string, timeout time.Duration) *eventPoster {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &eventPoster{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// postEventRequest mirrors the POST /api/events wire shape.
type postEventRequest struct {
	EventID  string  `json:"event_id"`
	LeagueID string  `json:"league_id"`
	TeamID   string  `json:"team_id"`
	Period   int     `json:"period"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	Type     string  `json:"type"`
	TS       int64   `json:"ts"`
}

// PostSeason submits every event in file order and reports acceptance
// counts. Order does not matter to the replay engine, but it keeps the
// output readable when verbose logging is on.
func (p *eventPoster) PostSeason(ctx context.Context, season loader.SeasonFile, verbose bool) (accepted, failed int) {
	lg := logger.Get()

	for _, lr := range season.Leagues {
		for _, er := range lr.Events {
			req := postEventRequest{
				EventID:  er.EventID,
				LeagueID: lr.LeagueID,
				TeamID:   er.TeamID,
				Period:   er.Period,
				Amount:   er.Amount,
				Status:   er.Status,
				Type:     er.Type,
				TS:       er.TS,
			}
			if err := p.post(ctx, req); err != nil {
				failed++
				lg.Warn(ctx, "event rejected",
					logger.String("eventID", er.EventID), logger.Error(err))
				continue
			}
			accepted++
			if verbose {
				lg.Info(ctx, "event accepted",
					logger.String("eventID", er.EventID),
					logger.Int("period", er.Period),
					logger.Float64("amount", er.Amount),
				)
			}
		}
	}
	return accepted, failed
}

func (p *eventPoster) post(ctx context.Context, body postEventRequest) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/events", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusAccepted {
		return errUnexpectedStatus(resp.StatusCode)
	}
	return nil
}

type errUnexpectedStatus int

func (e errUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status %d %s", int(e), http.StatusText(int(e)))
}
