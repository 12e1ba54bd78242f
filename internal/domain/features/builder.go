// Package features derives per-team mid-season feature vectors.
package features

import (
	"github.com/shopspring/decimal"

	"github.com/okian/iplpredict/internal/domain/model"
)

// Scoring and auction constants.
const (
	PointsPerWin       = 2
	CroreUnit          = 10_000_000
	StarPriceThreshold = 80_000_000
)

var croreDivisor = decimal.NewFromInt(CroreUnit)

// Build computes one feature row per team in teams, in the same order.
// played is the snapshot prefix; auctions is the full-season auction data.
func Build(teams []string, played []model.Match, auctions []model.AuctionRecord) Table {
	rows := make([]model.TeamFeatures, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, buildTeam(team, played, auctions))
	}
	return Table{rows: rows}
}

func buildTeam(team string, played []model.Match, auctions []model.AuctionRecord) model.TeamFeatures {
	var matches, wins int
	for _, m := range played {
		if !m.Involves(team) {
			continue
		}
		matches++
		if m.WinningTeam == team {
			wins++
		}
	}

	winPct := 0.0
	if matches > 0 {
		winPct = float64(wins) / float64(matches)
	}

	spend := decimal.Zero
	stars := 0
	for _, a := range auctions {
		if a.Team != team {
			continue
		}
		spend = spend.Add(decimal.NewFromFloat(a.Price))
		if a.Price > StarPriceThreshold {
			stars++
		}
	}

	return model.TeamFeatures{
		Team:            team,
		PointsMidSeason: float64(wins * PointsPerWin),
		WinPctMidSeason: winPct,
		SquadCostCrores: spend.Div(croreDivisor).InexactFloat64(),
		StarPlayerIndex: float64(stars),
	}
}
