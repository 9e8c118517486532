package repository

import "errors"

// Sentinel kinds for season store errors.
var (
	ErrLeagueNotFound = errors.New("league not found")
)
