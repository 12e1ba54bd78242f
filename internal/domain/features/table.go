package features

import (
	"fmt"

	"github.com/okian/iplpredict/internal/domain/model"
)

// Feature column names produced by Build.
const (
	ColumnPoints     = "points_mid_season"
	ColumnWinPct     = "win_pct_mid_season"
	ColumnSquadCost  = "squad_cost_crores"
	ColumnStarPlayer = "star_player_index"
)

// Columns lists the columns Build produces.
func Columns() []string {
	return []string{ColumnPoints, ColumnWinPct, ColumnSquadCost, ColumnStarPlayer}
}

// Table holds the feature rows of one request in team insertion order.
type Table struct {
	rows []model.TeamFeatures
}

// NewTable wraps rows; the slice is copied.
func NewTable(rows []model.TeamFeatures) Table {
	return Table{rows: append([]model.TeamFeatures(nil), rows...)}
}

// Len returns the number of teams.
func (t Table) Len() int { return len(t.rows) }

// Rows returns a copy of the feature rows.
func (t Table) Rows() []model.TeamFeatures { return append([]model.TeamFeatures(nil), t.rows...) }

// Teams returns team names in row order.
func (t Table) Teams() []string {
	teams := make([]string, len(t.rows))
	for i, r := range t.rows {
		teams[i] = r.Team
	}
	return teams
}

// Row returns the features of team.
func (t Table) Row(team string) (model.TeamFeatures, bool) {
	for _, r := range t.rows {
		if r.Team == team {
			return r, true
		}
	}
	return model.TeamFeatures{}, false
}

// Matrix reindexes the table to schema, one row per team and one column per
// schema entry in schema order. Columns outside the schema are dropped; a
// schema column the table does not provide is ErrSchemaMismatch.
func (t Table) Matrix(schema Schema) ([][]float64, error) {
	cols := schema.Columns()
	for _, c := range cols {
		if _, ok := value(model.TeamFeatures{}, c); !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, c)
		}
	}

	out := make([][]float64, len(t.rows))
	for i, r := range t.rows {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j], _ = value(r, c)
		}
		out[i] = row
	}
	return out, nil
}

func value(f model.TeamFeatures, column string) (float64, bool) {
	switch column {
	case ColumnPoints:
		return f.PointsMidSeason, true
	case ColumnWinPct:
		return f.WinPctMidSeason, true
	case ColumnSquadCost:
		return f.SquadCostCrores, true
	case ColumnStarPlayer:
		return f.StarPlayerIndex, true
	default:
		return 0, false
	}
}
