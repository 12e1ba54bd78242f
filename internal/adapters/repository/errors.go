package repository

import "errors"

// Sentinel kinds for data store errors.
var (
	ErrNotFound      = errors.New("season not found")
	ErrInvalidRecord = errors.New("invalid record")
)
