package loader

import "errors"

// ErrDataLoad marks a required data or model artifact that is missing or
// unreadable. It is fatal at startup.
var ErrDataLoad = errors.New("data load failed")
