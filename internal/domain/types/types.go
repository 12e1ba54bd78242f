// Package types contains common types used across the application
package types

import "github.com/okian/iplpredict/internal/domain/model"

// RankedTeam is one row of the formatted prediction table.
type RankedTeam struct {
	Rank           int     `json:"rank"`
	Team           string  `json:"team"`
	Probability    float64 `json:"probability"`
	WinProbability string  `json:"win_probability"`
}

// Result is the full response of one prediction request.
type Result struct {
	RequestID    string               `json:"request_id"`
	Year         int                  `json:"year"`
	MatchNumber  int                  `json:"match_number"`
	Played       int                  `json:"played"`
	TotalMatches int                  `json:"total_matches"`
	Teams        []RankedTeam         `json:"teams"`
	TopPick      RankedTeam           `json:"top_pick"`
	Features     []model.TeamFeatures `json:"features"`
}

// SnapshotPoint is one of the canonical cutoffs offered for a season.
type SnapshotPoint struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	MatchNumber int    `json:"match_number"`
}

// Season describes a selectable year.
type Season struct {
	Year         int             `json:"year"`
	TotalMatches int             `json:"total_matches"`
	Snapshots    []SnapshotPoint `json:"snapshots"`
}
