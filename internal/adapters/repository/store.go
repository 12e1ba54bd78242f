// Package repository holds the read-only tabular data the predictor runs on.
package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/iplpredict/internal/domain/model"
	"github.com/okian/iplpredict/pkg/metrics"
)

// Store provides read access to the loaded match and auction tables.
// Every method returns data the caller owns; the store is never mutated
// after construction.
type Store interface {
	// Season returns the matches of one year in season order.
	// Returns ErrNotFound if the year has no matches.
	Season(ctx context.Context, year int) ([]model.Match, error)
	// Auctions returns the auction rows of one year.
	Auctions(ctx context.Context, year int) []model.AuctionRecord
	// Years returns the seasons with at least one match, ascending.
	Years(ctx context.Context) []int
	// Count returns the number of match and auction rows.
	Count(ctx context.Context) (matches, auctions int)
}

// InMemoryStore is a Store backed by slices indexed by year.
type InMemoryStore struct {
	matches  []model.Match
	auctions []model.AuctionRecord

	seasons       map[int][]model.Match
	auctionByYear map[int][]model.AuctionRecord
	years         []int
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore validates and indexes the rows supplied via options.
func NewInMemoryStore(_ context.Context, opts ...Option) (*InMemoryStore, error) {
	s := &InMemoryStore{
		seasons:       make(map[int][]model.Match),
		auctionByYear: make(map[int][]model.AuctionRecord),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, m := range s.matches {
		if strings.TrimSpace(m.Team1) == "" || strings.TrimSpace(m.Team2) == "" {
			return nil, fmt.Errorf("%w: match %d has an empty team", ErrInvalidRecord, i)
		}
		s.seasons[m.Year] = append(s.seasons[m.Year], m)
	}
	for year, season := range s.seasons {
		sort.SliceStable(season, func(i, j int) bool { return season[i].Seq < season[j].Seq })
		s.years = append(s.years, year)
	}
	sort.Ints(s.years)

	for i, a := range s.auctions {
		if a.Price < 0 {
			return nil, fmt.Errorf("%w: auction %d has negative price %v", ErrInvalidRecord, i, a.Price)
		}
		if strings.TrimSpace(a.Team) == "" {
			return nil, fmt.Errorf("%w: auction %d has an empty team", ErrInvalidRecord, i)
		}
		s.auctionByYear[a.Year] = append(s.auctionByYear[a.Year], a)
	}

	metrics.UpdateDatasetRows("matches", len(s.matches))
	metrics.UpdateDatasetRows("auctions", len(s.auctions))
	metrics.UpdateSeasonsLoaded(len(s.years))
	return s, nil
}

// Season implements Store.
func (s *InMemoryStore) Season(_ context.Context, year int) ([]model.Match, error) {
	season, ok := s.seasons[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, year)
	}
	return append([]model.Match(nil), season...), nil
}

// Auctions implements Store.
func (s *InMemoryStore) Auctions(_ context.Context, year int) []model.AuctionRecord {
	return append([]model.AuctionRecord(nil), s.auctionByYear[year]...)
}

// Years implements Store.
func (s *InMemoryStore) Years(_ context.Context) []int {
	return append([]int(nil), s.years...)
}

// Count implements Store.
func (s *InMemoryStore) Count(_ context.Context) (int, int) {
	return len(s.matches), len(s.auctions)
}
