package config

import "errors"

// Sentinel kinds returned by Load and Validate.
var (
	ErrInvalidConfig = errors.New("iplpredict: invalid predictor config")
	ErrLoadConfig    = errors.New("iplpredict: cannot load predictor config")
)
