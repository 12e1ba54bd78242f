package predictcli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	tableWidth   = 64
	teamColWidth = 32
)

// render formats outcomes in the requested output format.
func render(format string, outcomes []Outcome) (string, error) {
	switch format {
	case "", FormatTable:
		return formatTable(outcomes), nil
	case FormatJSON:
		return formatJSON(outcomes)
	case FormatCSV:
		return formatCSV(outcomes)
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, format)
	}
}

func formatTable(outcomes []Outcome) string {
	var sb strings.Builder

	for _, o := range outcomes {
		sb.WriteString(fmt.Sprintf("\nIPL %d · %s\n", o.Request.Year, heading(o.Request)))
		sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

		switch {
		case o.Info != "":
			sb.WriteString("ℹ " + o.Info + "\n")
			continue
		case o.Result == nil:
			sb.WriteString("✗ " + o.Error + "\n")
			continue
		}

		sb.WriteString(fmt.Sprintf("%-4s %-*s %16s\n", "Rank", teamColWidth, "Team", "Win Probability"))
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, t := range o.Result.Teams {
			sb.WriteString(fmt.Sprintf("%-4d %-*s %16s\n", t.Rank, teamColWidth, truncateString(t.Team, teamColWidth), t.WinProbability))
		}
		sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
		sb.WriteString(fmt.Sprintf("Top pick: %s (%s)\n", o.Result.TopPick.Team, o.Result.TopPick.WinProbability))
	}

	return sb.String()
}

func heading(r Request) string {
	if r.Label != "" {
		return r.Label
	}
	return requestName(r)
}

func formatJSON(outcomes []Outcome) (string, error) {
	data, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}
	return string(data) + "\n", nil
}

func formatCSV(outcomes []Outcome) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{"year", "snapshot", "match", "rank", "team", "probability", "win_probability"})
	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		for _, t := range o.Result.Teams {
			_ = w.Write([]string{
				strconv.Itoa(o.Request.Year),
				o.Request.Snapshot,
				strconv.Itoa(o.Result.MatchNumber),
				strconv.Itoa(t.Rank),
				t.Team,
				strconv.FormatFloat(t.Probability, 'f', 6, 64),
				t.WinProbability,
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return sb.String(), nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
