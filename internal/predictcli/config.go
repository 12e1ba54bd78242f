package predictcli

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds configuration for a prediction run
type Config struct {
	BaseURL  string        // Base URL of the service
	Year     int           // Season to predict; 0 picks the latest
	Snapshot string        // Snapshot point key
	Match    int           // Explicit match cutoff; negative means unset
	Sweep    bool          // Predict every snapshot of every season
	Workers  int           // Number of concurrent requests in sweep mode
	Timeout  time.Duration // HTTP request timeout
	Format   string        // Output format: table, json or csv
	Output   string        // Output file; empty writes to the given writer
	Verbose  bool          // Enable debug logging
}

// SnapshotPoint mirrors one canonical cutoff of a season
type SnapshotPoint struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	MatchNumber int    `json:"match_number"`
}

// Season mirrors an entry of GET /seasons
type Season struct {
	Year         int             `json:"year"`
	TotalMatches int             `json:"total_matches"`
	Snapshots    []SnapshotPoint `json:"snapshots"`
}

// RankedTeam mirrors one row of a prediction
type RankedTeam struct {
	Rank           int     `json:"rank"`
	Team           string  `json:"team"`
	Probability    float64 `json:"probability"`
	WinProbability string  `json:"win_probability"`
}

// Result mirrors the response of GET /predict
type Result struct {
	RequestID   string       `json:"request_id"`
	Year        int          `json:"year"`
	MatchNumber int          `json:"match_number"`
	Played      int          `json:"played"`
	Total       int          `json:"total_matches"`
	Teams       []RankedTeam `json:"teams"`
	TopPick     RankedTeam   `json:"top_pick"`
}

// Request identifies one prediction to fetch
type Request struct {
	Year     int    `json:"year"`
	Snapshot string `json:"snapshot,omitempty"`
	Label    string `json:"label,omitempty"`
	Match    int    `json:"match"`
}

// query encodes the request as /predict query parameters.
func (r Request) query() string {
	v := url.Values{}
	v.Set("year", fmt.Sprint(r.Year))
	if r.Snapshot != "" {
		v.Set("snapshot", r.Snapshot)
	} else {
		v.Set("match", fmt.Sprint(r.Match))
	}
	return v.Encode()
}

// Outcome is the answer to one Request. Exactly one of Result, Info or Err
// is set; Error carries the text of Err for JSON output.
type Outcome struct {
	Request Request `json:"request"`
	Result  *Result `json:"result,omitempty"`
	Info    string  `json:"info,omitempty"`
	Error   string  `json:"error,omitempty"`
	Err     error   `json:"-"`
}

// Stats holds run statistics
type Stats struct {
	Requests    int
	Predictions int
	NotEnough   int
	Failed      int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}
