package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrInvalidModel = errors.New("invalid model")
	ErrModelOutput  = errors.New("unexpected model output")
)
