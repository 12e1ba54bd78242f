// Package loader reads the match, auction and model artifacts at startup.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/okian/iplpredict/internal/domain/model"
)

// Accepted date layouts for the match Date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2006/01/02",
}

// header maps normalized column names to their index.
type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, c := range cols {
		key := strings.ToLower(strings.TrimSpace(c))
		key = strings.ReplaceAll(key, "_", "")
		key = strings.ReplaceAll(key, " ", "")
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h
}

// index returns the position of the first present alias.
func (h header) index(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := h[a]; ok {
			return i, true
		}
	}
	return 0, false
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// ReadMatches parses the matches table. Required columns: team1, team2,
// winningteam and either year or date. The year comes from the date; the
// year or season column is only read when the date is absent or blank.
// Rows keep file order within a year, which becomes their season position.
func ReadMatches(r io.Reader) ([]model.Match, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read matches header: %w", err)
	}
	h := newHeader(cols)

	t1, ok1 := h.index("team1")
	t2, ok2 := h.index("team2")
	win, ok3 := h.index("winningteam", "winner")
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("matches table needs team1, team2 and winningteam columns")
	}
	yearCol, hasYear := h.index("year", "season")
	dateCol, hasDate := h.index("date", "matchdate")
	if !hasYear && !hasDate {
		return nil, errors.New("matches table needs a year or date column")
	}

	seq := make(map[int]int)
	var out []model.Match
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("matches line %d: %w", line, err)
		}

		m := model.Match{
			Team1:       field(rec, t1),
			Team2:       field(rec, t2),
			WinningTeam: field(rec, win),
		}
		if hasDate {
			if raw := field(rec, dateCol); raw != "" {
				d, err := parseDate(raw)
				if err != nil {
					return nil, fmt.Errorf("matches line %d: %w", line, err)
				}
				m.Date = d
				m.Year = d.Year()
			}
		}
		if m.Date.IsZero() && hasYear {
			y, err := parseSeason(field(rec, yearCol))
			if err != nil {
				return nil, fmt.Errorf("matches line %d: %w", line, err)
			}
			m.Year = y
		}
		if m.Year == 0 {
			return nil, fmt.Errorf("matches line %d: no year or date", line)
		}

		m.Seq = seq[m.Year]
		seq[m.Year]++
		out = append(out, m)
	}
	return out, nil
}

// ReadAuctions parses the auction table. Required columns: year, team, price.
func ReadAuctions(r io.Reader) ([]model.AuctionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read auction header: %w", err)
	}
	h := newHeader(cols)

	yearCol, ok1 := h.index("year", "season")
	teamCol, ok2 := h.index("team")
	priceCol, ok3 := h.index("price", "amount")
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("auction table needs year, team and price columns")
	}
	playerCol, hasPlayer := h.index("player", "playername", "name")

	var out []model.AuctionRecord
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("auction line %d: %w", line, err)
		}

		year, err := strconv.Atoi(field(rec, yearCol))
		if err != nil {
			return nil, fmt.Errorf("auction line %d: invalid year: %w", line, err)
		}
		price, err := strconv.ParseFloat(field(rec, priceCol), 64)
		if err != nil {
			return nil, fmt.Errorf("auction line %d: invalid price: %w", line, err)
		}
		if price < 0 {
			return nil, fmt.Errorf("auction line %d: negative price %v", line, price)
		}

		a := model.AuctionRecord{Year: year, Team: field(rec, teamCol), Price: price}
		if hasPlayer {
			a.Player = field(rec, playerCol)
		}
		out = append(out, a)
	}
	return out, nil
}

// parseSeason reads a season label such as "2014" or "2020/21" as the year
// it starts in.
func parseSeason(raw string) (int, error) {
	head, _, _ := strings.Cut(raw, "/")
	y, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", raw, err)
	}
	return y, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
