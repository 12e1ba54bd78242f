package features

import "errors"

// Sentinel kinds for feature errors.
var (
	ErrSchemaMismatch = errors.New("feature schema mismatch")
	ErrInvalidSchema  = errors.New("invalid feature schema")
)
