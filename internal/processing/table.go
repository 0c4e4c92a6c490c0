package processing

import (
	"sort"
	"strconv"

	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
)

// Row is one line of the results table.
type Row struct {
	GameID       string `json:"gameId"`
	Date         string `json:"date"`
	Season       int    `json:"season,omitempty"`
	Status       string `json:"status,omitempty"`
	HomeTeam     string `json:"homeTeam"`
	HomeScore    int    `json:"homeScore"`
	VisitorTeam  string `json:"visitorTeam"`
	VisitorScore int    `json:"visitorScore"`
}

// RowHeader names the table columns in display order.
var RowHeader = []string{"date", "season", "status", "home_team", "home_score", "visitor_team", "visitor_score"}

// Values renders the row in RowHeader order.
func (r Row) Values() []string {
	season := ""
	if r.Season != 0 {
		season = strconv.Itoa(r.Season)
	}
	return []string{
		r.Date,
		season,
		r.Status,
		r.HomeTeam,
		strconv.Itoa(r.HomeScore),
		r.VisitorTeam,
		strconv.Itoa(r.VisitorScore),
	}
}

// Rows flattens games into display rows, newest first. Team names come from the
// team index, then from names carried on the game, then fall back to the id.
func Rows(items []games.Game, teamIdx map[string]teams.Team) []Row {
	sorted := make([]games.Game, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	rows := make([]Row, 0, len(sorted))
	for _, g := range sorted {
		rows = append(rows, Row{
			GameID:       g.ID,
			Date:         g.Date.String(),
			Season:       g.Season,
			Status:       g.Status,
			HomeTeam:     teamName(teamIdx, g.HomeTeamID, g.HomeTeamName),
			HomeScore:    g.HomeScore,
			VisitorTeam:  teamName(teamIdx, g.AwayTeamID, g.AwayTeamName),
			VisitorScore: g.AwayScore,
		})
	}
	return rows
}

func teamName(idx map[string]teams.Team, id, carried string) string {
	if t, ok := idx[id]; ok && t.Name != "" {
		return t.Name
	}
	if carried != "" {
		return carried
	}
	return id
}
