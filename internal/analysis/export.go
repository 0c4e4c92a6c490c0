package analysis

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/preston-bernstein/nba-explorer/internal/processing"
)

// RankingHeader names the ranking CSV columns.
var RankingHeader = []string{"rank", "team", "games", "ppg", "ast_proxy", "reb_proxy", "net_rating_proxy"}

// WriteCSV writes a header and rows as CSV.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// GameRowsCSV exports the results table.
func GameRowsCSV(w io.Writer, rows []processing.Row) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Values())
	}
	return WriteCSV(w, processing.RowHeader, out)
}

// RankingsCSV exports the rankings table.
func RankingsCSV(w io.Writer, rs []Ranking) error {
	out := make([][]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, []string{
			strconv.Itoa(r.Rank),
			r.Team,
			strconv.Itoa(r.Games),
			formatFloat(r.PPG),
			formatFloat(r.AstProxy),
			formatFloat(r.RebProxy),
			formatFloat(r.NetRatingProxy),
		})
	}
	return WriteCSV(w, RankingHeader, out)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
