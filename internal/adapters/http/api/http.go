// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/iplpredict/internal/domain/features"
	"github.com/okian/iplpredict/internal/domain/scoring"
	"github.com/okian/iplpredict/internal/domain/snapshot"
	"github.com/okian/iplpredict/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SeasonsDependencies
	PredictDependencies
}

// Result mirrors the read shape returned by prediction queries.
type Result = types.Result

// Season mirrors the read shape returned by the seasons listing.
type Season = types.Season

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	seasonsHandler   *SeasonsHandler
	predictHandler   *PredictHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		seasonsHandler:   NewSeasonsHandler(deps),
		predictHandler:   NewPredictHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/seasons", MetricsMiddleware(s.seasonsHandler.HandleGetSeasons, "seasons"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandleGetPredict, "predict"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps pipeline errors to a status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, snapshot.ErrNotEnoughData):
		return http.StatusUnprocessableEntity, "not_enough_data"
	case errors.Is(err, snapshot.ErrUnknownSeason):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, snapshot.ErrInvalidCutoff), errors.Is(err, snapshot.ErrUnknownPoint), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, features.ErrSchemaMismatch):
		return http.StatusInternalServerError, "schema_mismatch"
	case errors.Is(err, scoring.ErrModelOutput):
		return http.StatusInternalServerError, "model_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
