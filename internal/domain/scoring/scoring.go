// Package scoring maps feature vectors to win probabilities using a frozen
// binary classifier.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/iplpredict/internal/domain/features"
	"github.com/okian/iplpredict/internal/domain/model"
)

// Classifier is a frozen binary classifier. PredictProba returns the
// positive-class probability for each row, in row order.
type Classifier interface {
	PredictProba(ctx context.Context, rows [][]float64) ([]float64, error)
	// FeatureNames returns the columns the model was trained on, or nil if
	// the artifact does not record them.
	FeatureNames() []string
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClassifier sets the frozen model.
func WithClassifier(c Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithSchema sets the ordered feature columns the model expects.
func WithSchema(s features.Schema) Option {
	return func(e *Engine) {
		e.schema = s
	}
}

// Engine reindexes feature tables to the model schema and runs inference.
// It holds no per-request state and is safe to reuse.
type Engine struct {
	classifier Classifier
	schema     features.Schema
}

// NewEngine creates an engine and checks that the classifier agrees with the
// schema when the artifact records its own feature names.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.classifier == nil {
		return nil, fmt.Errorf("%w: no classifier", ErrInvalidModel)
	}
	if e.schema.Len() == 0 {
		return nil, fmt.Errorf("%w: empty schema", ErrInvalidModel)
	}
	if names := e.classifier.FeatureNames(); names != nil && !e.schema.Equal(names) {
		return nil, fmt.Errorf("%w: model trained on %v, schema lists %v", features.ErrSchemaMismatch, names, e.schema.Columns())
	}
	return e, nil
}

// Schema returns the engine's feature schema.
func (e *Engine) Schema() features.Schema { return e.schema }

// Predict returns one probability per team in table order. Probabilities are
// independent per team and are not normalized across the season.
func (e *Engine) Predict(ctx context.Context, table features.Table) ([]model.Prediction, error) {
	rows, err := table.Matrix(e.schema)
	if err != nil {
		return nil, err
	}

	probs, err := e.classifier.PredictProba(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("predict proba: %w", err)
	}
	if len(probs) != len(rows) {
		return nil, fmt.Errorf("%w: %d probabilities for %d rows", ErrModelOutput, len(probs), len(rows))
	}

	teams := table.Teams()
	out := make([]model.Prediction, len(teams))
	for i, p := range probs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: probability %v for %s", ErrModelOutput, p, teams[i])
		}
		out[i] = model.Prediction{Team: teams[i], Probability: p}
	}
	return out, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func checkWidth(rows [][]float64, width int) error {
	for i, r := range rows {
		if len(r) != width {
			return fmt.Errorf("%w: row %d has %d values, model expects %d", features.ErrSchemaMismatch, i, len(r), width)
		}
	}
	return nil
}
