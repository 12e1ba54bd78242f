package loader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/iplpredict/internal/domain/model"
)

// Dataset is the raw content of the two tables.
type Dataset struct {
	Matches  []model.Match
	Auctions []model.AuctionRecord
}

// Source produces a Dataset once at startup.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}

// CSVSource reads the tables from two CSV files.
type CSVSource struct {
	MatchesPath string
	AuctionPath string
}

var _ Source = CSVSource{}

// Load implements Source. Any failure is wrapped in ErrDataLoad.
func (s CSVSource) Load(_ context.Context) (Dataset, error) {
	matches, err := readFile(s.MatchesPath, ReadMatches)
	if err != nil {
		return Dataset{}, err
	}
	auctions, err := readFile(s.AuctionPath, ReadAuctions)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Matches: matches, Auctions: auctions}, nil
}

func readFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, path, err)
	}
	return rows, nil
}
