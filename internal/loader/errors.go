package loader

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrOpenSeasonFile  = errors.New("open season file failed")
	ErrParseSeasonFile = errors.New("parse season file failed")
	ErrInvalidSeason   = errors.New("invalid season data")
)
