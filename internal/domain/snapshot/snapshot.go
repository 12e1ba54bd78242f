// Package snapshot selects the part of a season considered played at a cutoff.
package snapshot

import (
	"fmt"
	"sort"

	"github.com/okian/iplpredict/internal/domain/model"
)

// Snapshot is the prefix of a season's matches played up to a cutoff, together
// with the full season and its roster. Accessors return copies so a Snapshot
// can be shared without exposing its backing slices.
type Snapshot struct {
	year   int
	cutoff int
	season []model.Match
	played []model.Match
	teams  []string
}

// Select filters matches to year, keeps their season order and takes the first
// cutoff of them. A cutoff beyond the season length yields the full season.
// An empty prefix is reported as ErrNotEnoughData.
func Select(year, cutoff int, matches []model.Match) (Snapshot, error) {
	if cutoff < 0 {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrInvalidCutoff, cutoff)
	}

	season := SeasonMatches(year, matches)
	if len(season) == 0 {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrUnknownSeason, year)
	}

	n := min(cutoff, len(season))
	if n == 0 {
		return Snapshot{}, fmt.Errorf("season %d after %d matches: %w", year, cutoff, ErrNotEnoughData)
	}

	return Snapshot{
		year:   year,
		cutoff: cutoff,
		season: season,
		played: season[:n:n],
		teams:  Roster(season),
	}, nil
}

// SeasonMatches returns the matches of year ordered by their season position.
// The input slice is not modified.
func SeasonMatches(year int, matches []model.Match) []model.Match {
	season := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if m.Year == year {
			season = append(season, m)
		}
	}
	sort.SliceStable(season, func(i, j int) bool { return season[i].Seq < season[j].Seq })
	return season
}

// Roster lists every team appearing in the season: first all Team1 entries in
// match order, then any Team2 entries not yet seen.
func Roster(season []model.Match) []string {
	seen := make(map[string]struct{})
	teams := make([]string, 0)
	add := func(team string) {
		if team == "" {
			return
		}
		if _, ok := seen[team]; ok {
			return
		}
		seen[team] = struct{}{}
		teams = append(teams, team)
	}
	for _, m := range season {
		add(m.Team1)
	}
	for _, m := range season {
		add(m.Team2)
	}
	return teams
}

// Year returns the selected season.
func (s Snapshot) Year() int { return s.year }

// Cutoff returns the requested match cutoff, which may exceed Len.
func (s Snapshot) Cutoff() int { return s.cutoff }

// Len returns the number of played matches in the snapshot.
func (s Snapshot) Len() int { return len(s.played) }

// SeasonLen returns the number of matches in the full season.
func (s Snapshot) SeasonLen() int { return len(s.season) }

// Played returns a copy of the matches played so far.
func (s Snapshot) Played() []model.Match { return append([]model.Match(nil), s.played...) }


// Teams returns a copy of the season roster.
func (s Snapshot) Teams() []string { return append([]string(nil), s.teams...) }
