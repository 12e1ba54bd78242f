package predictcli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// verifyResult checks the invariants every prediction must satisfy: ranks are
// consecutive, probabilities lie in [0,1] and never increase down the table,
// percentages match their probabilities and the top pick is the first row.
func verifyResult(res Result) error {
	if len(res.Teams) == 0 {
		return errors.New("no teams in result")
	}
	if _, err := uuid.Parse(res.RequestID); err != nil {
		return fmt.Errorf("invalid request id %q: %w", res.RequestID, err)
	}

	for i, t := range res.Teams {
		if t.Rank != i+1 {
			return fmt.Errorf("entry %d has rank %d", i, t.Rank)
		}
		if t.Probability < 0 || t.Probability > 1 {
			return fmt.Errorf("%s has probability %v outside [0,1]", t.Team, t.Probability)
		}
		if want := percent(t.Probability); t.WinProbability != want {
			return fmt.Errorf("%s shows %s, expected %s", t.Team, t.WinProbability, want)
		}
		if i > 0 && t.Probability > res.Teams[i-1].Probability {
			return fmt.Errorf("result not sorted: entry %d (%s) outranks entry %d (%s)",
				i, t.Team, i-1, res.Teams[i-1].Team)
		}
	}

	if res.TopPick != res.Teams[0] {
		return fmt.Errorf("top pick %s is not the first ranked team %s", res.TopPick.Team, res.Teams[0].Team)
	}
	if res.Played > res.Total {
		return fmt.Errorf("played %d matches of a %d match season", res.Played, res.Total)
	}
	if res.Played > res.MatchNumber {
		return fmt.Errorf("played %d matches with cutoff %d", res.Played, res.MatchNumber)
	}
	return nil
}

func percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*PercentageMultiplier)
}
