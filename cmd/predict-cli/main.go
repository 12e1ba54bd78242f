package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/iplpredict/internal/predictcli"
)

// Default configuration constants.
const (
	defaultWorkers = 4
	defaultTimeout = 10 * time.Second
	defaultRunTime = 2 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		year     = flag.Int("year", 0, "Season to predict (default: latest offered season)")
		snap     = flag.String("snapshot", "halfway", "Snapshot point: halfway, three_quarter or end_of_league")
		match    = flag.Int("match", -1, "Explicit number of played matches; overrides -snapshot")
		sweep    = flag.Bool("sweep", false, "Predict every snapshot point of every season")
		workers  = flag.Int("workers", defaultWorkers, "Concurrent requests in sweep mode")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		format   = flag.String("format", predictcli.FormatTable, "Output format: table, json or csv")
		output   = flag.String("output", "", "Write output to a file instead of stdout")
		verbose  = flag.Bool("verbose", false, "Enable debug logging")
		showHelp = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *showHelp {
		predictcli.ShowHelp(os.Stdout)
		return
	}

	if err := predictcli.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTime)
	defer cancel()

	cfg := &predictcli.Config{
		BaseURL:  *baseURL,
		Year:     *year,
		Snapshot: *snap,
		Match:    *match,
		Sweep:    *sweep,
		Workers:  *workers,
		Timeout:  *timeout,
		Format:   *format,
		Output:   *output,
		Verbose:  *verbose,
	}

	if _, err := predictcli.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Prediction run failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
