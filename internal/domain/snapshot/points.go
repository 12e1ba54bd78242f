package snapshot

import (
	"fmt"

	"github.com/okian/iplpredict/internal/domain/types"
)

// Snapshot point keys.
const (
	KeyHalfway      = "halfway"
	KeyThreeQuarter = "three_quarter"
	KeyEndOfLeague  = "end_of_league"
)

// DefaultPlayoffMatches is the number of trailing matches treated as playoffs.
const DefaultPlayoffMatches = 4

// LeagueLength returns the number of league-stage matches in a season of
// total matches, never negative.
func LeagueLength(total, playoffMatches int) int {
	return max(total-max(playoffMatches, 0), 0)
}

// Points returns the canonical snapshot cutoffs for a season of total matches.
func Points(total, playoffMatches int) []types.SnapshotPoint {
	league := LeagueLength(total, playoffMatches)
	halfway := league / 2
	threeQuarter := league * 3 / 4

	return []types.SnapshotPoint{
		{Key: KeyHalfway, Label: fmt.Sprintf("Halfway (After Match %d)", halfway), MatchNumber: halfway},
		{Key: KeyThreeQuarter, Label: fmt.Sprintf("75%% Mark (After Match %d)", threeQuarter), MatchNumber: threeQuarter},
		{Key: KeyEndOfLeague, Label: fmt.Sprintf("End of League (After Match %d)", league), MatchNumber: league},
	}
}

// PointFor looks up a snapshot point by key.
func PointFor(key string, total, playoffMatches int) (types.SnapshotPoint, bool) {
	for _, p := range Points(total, playoffMatches) {
		if p.Key == key {
			return p, true
		}
	}
	return types.SnapshotPoint{}, false
}
