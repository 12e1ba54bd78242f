package predictcli

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/iplpredict/pkg/logger"
)

// SetupLogging initializes the logger on stderr so stdout carries only the
// rendered predictions.
func SetupLogging(verbose bool) error {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the prediction client.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `IPL Winner Prediction Client
============================

Queries a running predictor service and prints the ranked teams.

Usage:
  go run ./cmd/predict-cli [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -year int
        Season to predict (default: latest offered season)
  -snapshot string
        Snapshot point: halfway, three_quarter or end_of_league (default "halfway")
  -match int
        Explicit number of played matches; overrides -snapshot
  -sweep
        Predict every snapshot point of every season
  -workers int
        Concurrent requests in sweep mode (default 4)
  -timeout duration
        HTTP request timeout (default 10s)
  -format string
        Output format: table, json or csv (default "table")
  -output string
        Write output to a file instead of stdout
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  # Latest season at the halfway mark
  go run ./cmd/predict-cli

  # 2018 at the end of the league stage
  go run ./cmd/predict-cli -year 2018 -snapshot end_of_league

  # Every season and snapshot as CSV
  go run ./cmd/predict-cli -sweep -format csv -output predictions.csv
`)
}
