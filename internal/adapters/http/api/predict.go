// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// PredictDependencies defines the interface for running a prediction.
type PredictDependencies interface {
	Predict(ctx context.Context, year, matchNumber int) (Result, error)
	PredictSnapshot(ctx context.Context, year int, key string) (Result, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandleGetPredict handles GET /predict?year=Y&match=N and
// GET /predict?year=Y&snapshot=KEY requests.
func (h *PredictHandler) HandleGetPredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_predict"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethod))
		return
	}

	q := r.URL.Query()
	year, err := strconv.Atoi(strings.TrimSpace(q.Get("year")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("year must be an integer")))
		return
	}

	key := strings.TrimSpace(q.Get("snapshot"))
	matchStr := strings.TrimSpace(q.Get("match"))

	var res Result
	switch {
	case key != "" && matchStr != "":
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("use either match or snapshot, not both")))
		return
	case key != "":
		res, err = h.deps.PredictSnapshot(r.Context(), year, key)
	case matchStr != "":
		n, convErr := strconv.Atoi(matchStr)
		if convErr != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("match must be an integer")))
			return
		}
		res, err = h.deps.Predict(r.Context(), year, n)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing match or snapshot")))
		return
	}

	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
