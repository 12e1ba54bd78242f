package scoring

import (
	"context"
	"fmt"
)

// Logistic is a fitted logistic regression.
type Logistic struct {
	Names        []string  `json:"feature_names,omitempty"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Validate checks the coefficient vector against the recorded feature names.
func (l *Logistic) Validate() error {
	if len(l.Coefficients) == 0 {
		return fmt.Errorf("%w: logistic model has no coefficients", ErrInvalidModel)
	}
	if l.Names != nil && len(l.Names) != len(l.Coefficients) {
		return fmt.Errorf("%w: %d feature names for %d coefficients", ErrInvalidModel, len(l.Names), len(l.Coefficients))
	}
	return nil
}

// FeatureNames implements Classifier.
func (l *Logistic) FeatureNames() []string { return l.Names }

// PredictProba implements Classifier.
func (l *Logistic) PredictProba(ctx context.Context, rows [][]float64) ([]float64, error) {
	if err := checkWidth(rows, len(l.Coefficients)); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}
		z := l.Intercept
		for j, x := range r {
			z += l.Coefficients[j] * x
		}
		out[i] = sigmoid(z)
	}
	return out, nil
}
