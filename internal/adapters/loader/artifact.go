package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/iplpredict/internal/domain/scoring"
)

// Model kinds accepted in the artifact's "kind" field.
const (
	KindLogistic     = "logistic"
	KindTreeEnsemble = "tree_ensemble"
)

// LoadModel reads a frozen classifier from a JSON artifact.
func LoadModel(path string) (scoring.Classifier, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	c, kind, err := DecodeModel(raw)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrDataLoad, path, err)
	}
	return c, kind, nil
}

// DecodeModel parses a model artifact and validates its structure.
func DecodeModel(raw []byte) (scoring.Classifier, string, error) {
	var envelope struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, "", fmt.Errorf("decode model: %w", err)
	}

	switch envelope.Kind {
	case KindLogistic:
		var m scoring.Logistic
		if err := decodeInto(raw, &m); err != nil {
			return nil, "", err
		}
		if err := m.Validate(); err != nil {
			return nil, "", err
		}
		return &m, envelope.Kind, nil
	case KindTreeEnsemble:
		var m scoring.TreeEnsemble
		if err := decodeInto(raw, &m); err != nil {
			return nil, "", err
		}
		if err := m.Validate(); err != nil {
			return nil, "", err
		}
		return &m, envelope.Kind, nil
	default:
		return nil, "", fmt.Errorf("unknown model kind %q", envelope.Kind)
	}
}

func decodeInto(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode model: %w", err)
	}
	return nil
}

// LoadFeatureColumns reads the ordered feature column list, a JSON array of
// strings.
func LoadFeatureColumns(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	var cols []string
	if err := json.Unmarshal(raw, &cols); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, path, err)
	}
	return cols, nil
}
