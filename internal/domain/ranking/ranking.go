// Package ranking orders predictions for presentation.
package ranking

import (
	"fmt"
	"sort"

	"github.com/okian/iplpredict/internal/domain/model"
	"github.com/okian/iplpredict/internal/domain/types"
)

// Format sorts predictions by probability descending and renders each as a
// two-decimal percentage. Equal probabilities keep their input order.
func Format(preds []model.Prediction) []types.RankedTeam {
	sorted := append([]model.Prediction(nil), preds...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})

	out := make([]types.RankedTeam, len(sorted))
	for i, p := range sorted {
		out[i] = types.RankedTeam{
			Rank:           i + 1,
			Team:           p.Team,
			Probability:    p.Probability,
			WinProbability: Percent(p.Probability),
		}
	}
	return out
}

// Percent renders p in [0,1] as a percentage with two decimals, e.g. "67.34%".
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

// TopPick returns the first ranked team.
func TopPick(ranked []types.RankedTeam) (types.RankedTeam, bool) {
	if len(ranked) == 0 {
		return types.RankedTeam{}, false
	}
	return ranked[0], true
}

// Headline renders a pick as "Team (67.34%)".
func Headline(pick types.RankedTeam) string {
	return fmt.Sprintf("%s (%s)", pick.Team, pick.WinProbability)
}
