package service

import "errors"

// Sentinel kinds for pipeline errors.
var (
	ErrNotStarted  = errors.New("service not started")
	ErrMissingDeps = errors.New("service dependencies missing")
)
