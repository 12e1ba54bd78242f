package snapshot

import "errors"

// Sentinel kinds for snapshot selection.
var (
	ErrNotEnoughData = errors.New("not enough matches have been played yet")
	ErrUnknownSeason = errors.New("season not found")
	ErrInvalidCutoff = errors.New("invalid match cutoff")
	ErrUnknownPoint  = errors.New("unknown snapshot point")
)
