package scoring

import (
	"context"
	"fmt"
	"math"
)

// Node is one node of a regression tree. Leaves carry Value; split nodes
// send rows with x[Feature] < Threshold to Left and the rest to Right.
type Node struct {
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
}

// Tree is a flat list of nodes rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// TreeEnsemble is a gradient-boosted tree classifier with a logistic link.
// BaseScore is the prior probability; its log-odds seed the margin.
type TreeEnsemble struct {
	Names     []string `json:"feature_names,omitempty"`
	NumInputs int      `json:"num_features"`
	BaseScore float64  `json:"base_score"`
	Trees     []Tree   `json:"trees"`
}

// Validate checks tree structure: child indexes in range, split features
// within the input width and no cycles reachable from the root.
func (t *TreeEnsemble) Validate() error {
	if t.NumInputs <= 0 {
		return fmt.Errorf("%w: num_features must be positive", ErrInvalidModel)
	}
	if t.Names != nil && len(t.Names) != t.NumInputs {
		return fmt.Errorf("%w: %d feature names for %d inputs", ErrInvalidModel, len(t.Names), t.NumInputs)
	}
	if t.BaseScore <= 0 || t.BaseScore >= 1 {
		return fmt.Errorf("%w: base_score %v outside (0,1)", ErrInvalidModel, t.BaseScore)
	}
	if len(t.Trees) == 0 {
		return fmt.Errorf("%w: ensemble has no trees", ErrInvalidModel)
	}
	for i, tree := range t.Trees {
		if err := tree.validate(t.NumInputs); err != nil {
			return fmt.Errorf("%w: tree %d: %v", ErrInvalidModel, i, err)
		}
	}
	return nil
}

func (tr Tree) validate(width int) error {
	if len(tr.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	// children must point forward, which rules out cycles
	for i, n := range tr.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d splits on feature %d", i, n.Feature)
		}
		for _, c := range []int{n.Left, n.Right} {
			if c <= i || c >= len(tr.Nodes) {
				return fmt.Errorf("node %d has child %d", i, c)
			}
		}
	}
	return nil
}

func (tr Tree) eval(x []float64) float64 {
	i := 0
	for {
		n := tr.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// FeatureNames implements Classifier.
func (t *TreeEnsemble) FeatureNames() []string { return t.Names }

// PredictProba implements Classifier.
func (t *TreeEnsemble) PredictProba(ctx context.Context, rows [][]float64) ([]float64, error) {
	if err := checkWidth(rows, t.NumInputs); err != nil {
		return nil, err
	}
	base := math.Log(t.BaseScore / (1 - t.BaseScore))
	out := make([]float64, len(rows))
	for i, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}
		margin := base
		for _, tree := range t.Trees {
			margin += tree.eval(r)
		}
		out[i] = sigmoid(margin)
	}
	return out, nil
}
