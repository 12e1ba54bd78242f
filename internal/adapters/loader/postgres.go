package loader

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"github.com/okian/iplpredict/internal/domain/model"
)

// Queries used by PostgresSource. Matches are read in season order so the
// row position within a year becomes the match's season position.
const (
	matchesQuery = `SELECT year, team1, team2, COALESCE(winning_team, ''), match_date
		FROM matches ORDER BY year, match_date, id`
	auctionsQuery = `SELECT year, team, COALESCE(player, ''), price FROM auctions ORDER BY year, id`
)

// PostgresSource reads the tables from a Postgres database.
type PostgresSource struct {
	DB *sql.DB
}

var _ Source = (*PostgresSource)(nil)

// OpenPostgres opens and pings a Postgres connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ErrDataLoad, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: pinging database: %v", ErrDataLoad, err)
	}
	return &PostgresSource{DB: db}, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.DB.Close()
}

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) (Dataset, error) {
	matches, err := s.loadMatches(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	auctions, err := s.loadAuctions(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	return Dataset{Matches: matches, Auctions: auctions}, nil
}

func (s *PostgresSource) loadMatches(ctx context.Context) ([]model.Match, error) {
	rows, err := s.DB.QueryContext(ctx, matchesQuery)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	seq := make(map[int]int)
	var out []model.Match
	for rows.Next() {
		var m model.Match
		var date sql.NullTime
		if err := rows.Scan(&m.Year, &m.Team1, &m.Team2, &m.WinningTeam, &date); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if date.Valid {
			m.Date = date.Time
		}
		m.Seq = seq[m.Year]
		seq[m.Year]++
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PostgresSource) loadAuctions(ctx context.Context) ([]model.AuctionRecord, error) {
	rows, err := s.DB.QueryContext(ctx, auctionsQuery)
	if err != nil {
		return nil, fmt.Errorf("query auctions: %w", err)
	}
	defer rows.Close()

	var out []model.AuctionRecord
	for rows.Next() {
		var a model.AuctionRecord
		if err := rows.Scan(&a.Year, &a.Team, &a.Player, &a.Price); err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
