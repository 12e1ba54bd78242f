// Package model contains domain models passed between layers.
package model

import "time"

// Match is one played fixture of a season.
// Seq is the zero-based position of the match within its year and defines
// the order used for snapshot prefixes.
type Match struct {
	Year        int       // season year
	Team1       string    // first listed side
	Team2       string    // second listed side
	WinningTeam string    // empty when no result was recorded
	Date        time.Time // match date, zero if unknown
	Seq         int       // position within the season
}

// Involves reports whether team played in m.
func (m Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// AuctionRecord is a single player acquisition for one team in one season.
type AuctionRecord struct {
	Year   int
	Team   string
	Player string
	Price  float64 // raw currency units, never negative
}

// TeamFeatures is the mid-season feature vector derived for one team.
type TeamFeatures struct {
	Team            string  `json:"team"`
	PointsMidSeason float64 `json:"points_mid_season"`
	WinPctMidSeason float64 `json:"win_pct_mid_season"`
	SquadCostCrores float64 `json:"squad_cost_crores"`
	StarPlayerIndex float64 `json:"star_player_index"`
}

// Prediction is the classifier output for one team.
type Prediction struct {
	Team        string
	Probability float64 // positive-class probability in [0,1]
}
