package repository

import "github.com/okian/iplpredict/internal/domain/model"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithMatches sets the match rows. Rows of one year must already carry their
// season position in Seq.
func WithMatches(matches []model.Match) Option {
	return func(s *InMemoryStore) {
		s.matches = append(s.matches, matches...)
	}
}

// WithAuctions sets the auction rows.
func WithAuctions(records []model.AuctionRecord) Option {
	return func(s *InMemoryStore) {
		s.auctions = append(s.auctions, records...)
	}
}
