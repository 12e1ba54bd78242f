package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/iplpredict/internal/adapters/http/api"
	"github.com/okian/iplpredict/internal/adapters/http/site"
	"github.com/okian/iplpredict/internal/adapters/http/swagger"
	"github.com/okian/iplpredict/internal/adapters/loader"
	repository "github.com/okian/iplpredict/internal/adapters/repository"
	app "github.com/okian/iplpredict/internal/app"
	"github.com/okian/iplpredict/internal/config"
	"github.com/okian/iplpredict/internal/domain/features"
	"github.com/okian/iplpredict/internal/domain/scoring"
	"github.com/okian/iplpredict/pkg/logger"
	"github.com/okian/iplpredict/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	loadTimeout               = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Data and model are loaded once; any failure halts before serving.
	loadCtx, cancelLoad := context.WithTimeout(ctx, loadTimeout)
	svc, err := buildService(loadCtx, cfg, loggerInstance)
	cancelLoad()
	if err != nil {
		loggerInstance.Fatal(ctx, "startup failed", logger.Bool("dataLoad", errors.Is(err, loader.ErrDataLoad)), logger.Error(err))
	}
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Fatal(ctx, "failed to start service", logger.Error(err))
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildService loads the tables and the frozen model named by cfg and wires
// them into a prediction service. Every error wraps loader.ErrDataLoad.
func buildService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, error) {
	dataset, err := loadDataset(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := repository.NewInMemoryStore(ctx,
		repository.WithMatches(dataset.Matches),
		repository.WithAuctions(dataset.Auctions),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", loader.ErrDataLoad, err)
	}
	matches, auctions := store.Count(ctx)
	log.Info(ctx, "tables loaded",
		logger.String("source", cfg.DataSource),
		logger.Int("matches", matches),
		logger.Int("auctions", auctions),
		logger.Int("seasons", len(store.Years(ctx))),
	)

	engine, err := loadEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	return app.New(
		app.WithLogger(log),
		app.WithStore(store),
		app.WithEngine(engine),
		app.WithMinSeason(cfg.MinSeason),
		app.WithPlayoffMatches(cfg.PlayoffMatches),
	), nil
}

func loadDataset(ctx context.Context, cfg *config.Config) (loader.Dataset, error) {
	if cfg.DataSource == config.SourcePostgres {
		src, err := loader.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return loader.Dataset{}, err
		}
		defer func() { _ = src.Close() }()
		return src.Load(ctx)
	}
	return loader.CSVSource{MatchesPath: cfg.MatchesPath, AuctionPath: cfg.AuctionPath}.Load(ctx)
}

func loadEngine(cfg *config.Config, log logger.Logger) (*scoring.Engine, error) {
	clf, kind, err := loader.LoadModel(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	cols, err := loader.LoadFeatureColumns(cfg.FeatureColumnsPath)
	if err != nil {
		return nil, err
	}
	schema, err := features.NewSchema(cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", loader.ErrDataLoad, cfg.FeatureColumnsPath, err)
	}
	engine, err := scoring.NewEngine(scoring.WithClassifier(clf), scoring.WithSchema(schema))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", loader.ErrDataLoad, err)
	}

	metrics.UpdateModelFeatures(schema.Len())
	log.Info(context.Background(), "model loaded",
		logger.String("kind", kind),
		logger.String("path", cfg.ModelPath),
		logger.Any("features", schema.Columns()),
	)
	return engine, nil
}

// newMux registers docs, API reference and business routes.
func newMux(ctx context.Context, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
