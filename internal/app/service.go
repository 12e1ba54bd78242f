// Package service provides the prediction pipeline that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	repository "github.com/okian/iplpredict/internal/adapters/repository"
	"github.com/okian/iplpredict/internal/domain/features"
	"github.com/okian/iplpredict/internal/domain/model"
	"github.com/okian/iplpredict/internal/domain/ranking"
	"github.com/okian/iplpredict/internal/domain/scoring"
	"github.com/okian/iplpredict/internal/domain/snapshot"
	"github.com/okian/iplpredict/internal/domain/types"
	"github.com/okian/iplpredict/pkg/logger"
	"github.com/okian/iplpredict/pkg/metrics"
)

// DefaultMinSeason is the first season offered for prediction.
const DefaultMinSeason = 2013

// Service runs Selector -> Builder -> Engine -> Formatter for one request at
// a time. The store and engine are shared read-only; nothing derived from a
// request is retained.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	engine *scoring.Engine

	// Configuration
	minSeason      int
	playoffMatches int

	// State
	started     bool
	predictions atomic.Int64
	notEnough   atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets the tabular data store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine sets the prediction engine.
func WithEngine(engine *scoring.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithMinSeason sets the earliest season listed and accepted.
func WithMinSeason(year int) Option {
	return func(s *Service) {
		s.minSeason = year
	}
}

// WithPlayoffMatches sets how many trailing matches of a season are playoffs.
func WithPlayoffMatches(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.playoffMatches = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		minSeason:      DefaultMinSeason,
		playoffMatches: snapshot.DefaultPlayoffMatches,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start checks that the store and engine are wired and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil || s.engine == nil {
		return fmt.Errorf("%w: store=%t engine=%t", ErrMissingDeps, s.store != nil, s.engine != nil)
	}

	matches, auctions := s.store.Count(ctx)
	s.started = true
	s.logger.Info(ctx, "prediction service started",
		logger.Int("matches", matches),
		logger.Int("auctions", auctions),
		logger.Int("features", s.engine.Schema().Len()),
		logger.Int("minSeason", s.minSeason),
		logger.Int("playoffMatches", s.playoffMatches),
	)

	return nil
}

// Stop marks the service as stopped. Loaded data is left untouched.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "prediction service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Seasons lists the selectable years, newest first, each with its canonical
// snapshot points.
func (s *Service) Seasons(ctx context.Context) ([]types.Season, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	years := s.store.Years(ctx)
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := make([]types.Season, 0, len(years))
	for _, year := range years {
		if year < s.minSeason {
			continue
		}
		season, err := s.store.Season(ctx, year)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Season{
			Year:         year,
			TotalMatches: len(season),
			Snapshots:    snapshot.Points(len(season), s.playoffMatches),
		})
	}
	return out, nil
}

// PredictSnapshot resolves a snapshot key for the season and runs Predict.
func (s *Service) PredictSnapshot(ctx context.Context, year int, key string) (types.Result, error) {
	if err := s.ready(); err != nil {
		return types.Result{}, err
	}

	season, err := s.season(ctx, year)
	if err != nil {
		return types.Result{}, err
	}

	point, ok := snapshot.PointFor(key, len(season), s.playoffMatches)
	if !ok {
		return types.Result{}, fmt.Errorf("%w: %q", snapshot.ErrUnknownPoint, key)
	}

	return s.Predict(ctx, year, point.MatchNumber)
}

// Predict ranks every team of the season by its modelled chance of winning,
// using only the first matchNumber matches as played. NotEnoughData returns
// before the engine is consulted.
func (s *Service) Predict(ctx context.Context, year, matchNumber int) (types.Result, error) {
	if err := s.ready(); err != nil {
		return types.Result{}, err
	}
	start := time.Now()

	season, err := s.season(ctx, year)
	if err != nil {
		return types.Result{}, err
	}

	snap, err := snapshot.Select(year, matchNumber, season)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotEnoughData) {
			s.notEnoughData(ctx, year, matchNumber)
		}
		return types.Result{}, err
	}

	table := features.Build(snap.Teams(), snap.Played(), s.store.Auctions(ctx, year))
	if table.Len() == 0 {
		s.notEnoughData(ctx, year, matchNumber)
		return types.Result{}, fmt.Errorf("season %d has no teams: %w", year, snapshot.ErrNotEnoughData)
	}

	preds, err := s.engine.Predict(ctx, table)
	if err != nil {
		if errors.Is(err, features.ErrSchemaMismatch) {
			metrics.RecordSchemaMismatch()
		} else {
			metrics.RecordModelError()
		}
		s.logger.Error(ctx, "prediction failed",
			logger.Int("year", year),
			logger.Int("match", matchNumber),
			logger.Error(err),
		)
		return types.Result{}, err
	}

	ranked := ranking.Format(preds)
	top, _ := ranking.TopPick(ranked)

	latency := time.Since(start)
	metrics.RecordPrediction(float64(latency.Microseconds())/1000, len(ranked))
	s.predictions.Add(1)

	s.logger.Debug(ctx, "prediction complete",
		logger.Int("year", year),
		logger.Int("match", matchNumber),
		logger.Int("played", snap.Len()),
		logger.Int("teams", len(ranked)),
		logger.String("topPick", ranking.Headline(top)),
		logger.Duration("latency", latency),
	)

	return types.Result{
		RequestID:    uuid.NewString(),
		Year:         snap.Year(),
		MatchNumber:  snap.Cutoff(),
		Played:       snap.Len(),
		TotalMatches: snap.SeasonLen(),
		Teams:        ranked,
		TopPick:      top,
		Features:     table.Rows(),
	}, nil
}

func (s *Service) season(ctx context.Context, year int) ([]model.Match, error) {
	if year < s.minSeason {
		return nil, fmt.Errorf("%w: %d is before %d", snapshot.ErrUnknownSeason, year, s.minSeason)
	}
	season, err := s.store.Season(ctx, year)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", snapshot.ErrUnknownSeason, year)
	}
	return season, err
}

func (s *Service) notEnoughData(ctx context.Context, year, matchNumber int) {
	metrics.RecordNotEnoughData()
	s.notEnough.Add(1)
	s.logger.Info(ctx, "not enough match data for selection",
		logger.Int("year", year),
		logger.Int("match", matchNumber),
	)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"minSeason":      s.minSeason,
		"playoffMatches": s.playoffMatches,
		"predictions":    s.predictions.Load(),
		"notEnoughData":  s.notEnough.Load(),
	}

	if s.started {
		ctx := context.Background()
		matches, auctions := s.store.Count(ctx)
		stats["matches"] = matches
		stats["auctions"] = auctions
		stats["seasons"] = len(s.store.Years(ctx))
		stats["features"] = s.engine.Schema().Columns()
	}

	return stats
}
