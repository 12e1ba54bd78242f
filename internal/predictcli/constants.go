package predictcli

import "errors"

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
	PercentageMultiplier    = 100
)

// Sentinel kinds for client failures.
var (
	ErrUnhealthy    = errors.New("service is not healthy")
	ErrNoSeasons    = errors.New("service offers no seasons")
	ErrVerification = errors.New("result verification failed")
	ErrRequests     = errors.New("prediction requests failed")
	ErrFormat       = errors.New("unknown output format")
)
