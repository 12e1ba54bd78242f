package predictcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/iplpredict/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	outputPermission    = 0600
)

// Run checks the service, resolves the requested snapshots, fetches the
// predictions, verifies them and writes the rendered output to out (or to
// cfg.Output when set).
func Run(ctx context.Context, cfg *Config, out io.Writer) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting prediction run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("year", cfg.Year),
		logger.String("snapshot", cfg.Snapshot),
		logger.Int("match", cfg.Match),
		logger.Bool("sweep", cfg.Sweep),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, err
	}

	// Step 2: Resolve what to ask for
	var seasons []Season
	if err := client.getJSON(ctx, "/seasons", &seasons); err != nil {
		return stats, fmt.Errorf("season listing failed: %w", err)
	}
	requests, err := planRequests(cfg, seasons)
	if err != nil {
		return stats, err
	}

	// Step 3: Fetch predictions
	outcomes := fetchAll(ctx, client, requests, cfg.Workers, stats)

	// Step 4: Verify results
	var verifyErrs []error
	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		if err := verifyResult(*o.Result); err != nil {
			verifyErrs = append(verifyErrs, fmt.Errorf("%d/%s: %w", o.Request.Year, requestName(o.Request), err))
		}
	}

	// Step 5: Render
	rendered, err := render(cfg.Format, outcomes)
	if err != nil {
		return stats, err
	}
	if err := writeOutput(ctx, cfg.Output, out, rendered); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if len(verifyErrs) > 0 {
		return stats, fmt.Errorf("%w: %w", ErrVerification, errors.Join(verifyErrs...))
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrRequests, stats.Failed, stats.Requests)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// The service answers /healthz with Prometheus metrics
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// planRequests turns the configuration into the list of predictions to fetch.
// seasons is ordered newest first, as the service lists it.
func planRequests(cfg *Config, seasons []Season) ([]Request, error) {
	if len(seasons) == 0 {
		return nil, ErrNoSeasons
	}

	if cfg.Sweep {
		var out []Request
		for _, s := range seasons {
			for _, p := range s.Snapshots {
				out = append(out, Request{Year: s.Year, Snapshot: p.Key, Label: p.Label, Match: p.MatchNumber})
			}
		}
		return out, nil
	}

	season := seasons[0]
	if cfg.Year != 0 {
		found := false
		for _, s := range seasons {
			if s.Year == cfg.Year {
				season, found = s, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("season %d is not offered", cfg.Year)
		}
	}

	if cfg.Match >= 0 {
		return []Request{{Year: season.Year, Match: cfg.Match, Label: fmt.Sprintf("After Match %d", cfg.Match)}}, nil
	}
	for _, p := range season.Snapshots {
		if p.Key == cfg.Snapshot {
			return []Request{{Year: season.Year, Snapshot: p.Key, Label: p.Label, Match: p.MatchNumber}}, nil
		}
	}
	return nil, fmt.Errorf("snapshot %q is not offered for %d", cfg.Snapshot, season.Year)
}

// fetchAll runs the requests on a bounded worker pool and returns outcomes in
// request order.
func fetchAll(ctx context.Context, client *HTTPClient, requests []Request, workers int, stats *Stats) []Outcome {
	workers = max(1, min(workers, len(requests)))
	outcomes := make([]Outcome, len(requests))

	var (
		predicted int64
		notEnough int64
		failed    int64
	)

	indexChan := make(chan int, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexChan {
				o := fetchOne(ctx, client, requests[index])
				switch {
				case o.Result != nil:
					atomic.AddInt64(&predicted, 1)
				case o.Info != "":
					atomic.AddInt64(&notEnough, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				outcomes[index] = o
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range requests {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	// Requests never sent because ctx ended count as failed
	for i := range outcomes {
		if outcomes[i].Result == nil && outcomes[i].Info == "" && outcomes[i].Err == nil {
			outcomes[i] = Outcome{Request: requests[i], Err: ctx.Err(), Error: fmt.Sprint(ctx.Err())}
			failed++
		}
	}

	stats.Requests = len(requests)
	stats.Predictions = int(predicted)
	stats.NotEnough = int(notEnough)
	stats.Failed = int(failed)
	return outcomes
}

func fetchOne(ctx context.Context, client *HTTPClient, req Request) Outcome {
	var res Result
	err := client.getJSON(ctx, "/predict?"+req.query(), &res)

	var apiErr *APIError
	switch {
	case err == nil:
		logger.Get().Debug(ctx, "prediction received",
			logger.Int("year", req.Year),
			logger.String("snapshot", requestName(req)),
			logger.String("topPick", res.TopPick.Team))
		return Outcome{Request: req, Result: &res}
	case errors.As(err, &apiErr) && apiErr.NotEnoughData():
		return Outcome{Request: req, Info: apiErr.Message}
	default:
		logger.Get().Warn(ctx, "prediction failed",
			logger.Int("year", req.Year),
			logger.String("snapshot", requestName(req)),
			logger.Error(err))
		return Outcome{Request: req, Err: err, Error: err.Error()}
	}
}

func requestName(r Request) string {
	if r.Snapshot != "" {
		return r.Snapshot
	}
	return fmt.Sprintf("match_%d", r.Match)
}

// writeOutput writes rendered to path when set, otherwise to out.
func writeOutput(ctx context.Context, path string, out io.Writer, rendered string) error {
	if path == "" {
		_, err := io.WriteString(out, rendered)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(rendered), outputPermission); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Get().Info(ctx, "output written", logger.String("filename", path))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate float64
	if stats.Requests > 0 {
		successRate = float64(stats.Predictions+stats.NotEnough) / float64(stats.Requests) * PercentageMultiplier
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("requests", stats.Requests),
		logger.Int("predictions", stats.Predictions),
		logger.Int("notEnoughData", stats.NotEnough),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate))
}
