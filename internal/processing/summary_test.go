package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
)

func TestSummarizeEmptySelection(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil, nil))
	assert.Equal(t, Summary{}, Summarize([]games.Game{}, []players.Player{{ID: "p", TeamID: "A"}}))
}

func TestSummarizeCountsAndAggregates(t *testing.T) {
	roster := []players.Player{
		{ID: "pb", TeamID: "B"},
		{ID: "pz", TeamID: "Z"},
	}
	s := Summarize(sampleGames(), roster)

	assert.Equal(t, 4, s.Games)
	assert.Equal(t, 4, s.Teams)
	// participants pa, pc, pd plus rostered pb; pz's team never played.
	assert.Equal(t, 4, s.Players)
	assert.InDelta(t, 97.25, s.AverageHomeScore, 1e-9)
	assert.InDelta(t, 97.5, s.AverageAwayScore, 1e-9)
	assert.InDelta(t, 194.75, s.AverageTotalPoints, 1e-9)
	assert.Equal(t, day("2024-01-01"), s.FirstDate)
	assert.Equal(t, day("2024-01-05"), s.LastDate)
	assert.Equal(t, 5, s.SpanDays)
}

func TestSummarizeSingleGameSpansOneDay(t *testing.T) {
	s := Summarize(sampleGames()[:1], nil)
	assert.Equal(t, 1, s.SpanDays)
	assert.Equal(t, 2, s.Teams)
	assert.Equal(t, 1, s.Players)
}

func TestRowsSortNewestFirstAndResolveNames(t *testing.T) {
	idx := teams.Index([]teams.Team{{ID: "A", Name: "Alpha"}, {ID: "B", Name: "Bravo"}})
	in := sampleGames()
	in[2].HomeTeamName = "Charlie"

	rows := Rows(in, idx)
	assert.Len(t, rows, 4)
	assert.Equal(t, []string{"2", "3", "4", "1"}, []string{rows[0].GameID, rows[1].GameID, rows[2].GameID, rows[3].GameID})
	assert.Equal(t, "Bravo", rows[0].HomeTeam)
	assert.Equal(t, "C", rows[0].VisitorTeam)
	assert.Equal(t, "Charlie", rows[1].HomeTeam)
	assert.Equal(t, "Alpha", rows[3].HomeTeam)

	assert.Equal(t, "1", in[0].ID, "input order untouched")
	assert.Empty(t, Rows(nil, idx))
}

func TestRowValuesFollowHeader(t *testing.T) {
	r := Row{Date: "2024-01-01", Season: 2023, Status: "Final", HomeTeam: "A", HomeScore: 100, VisitorTeam: "B", VisitorScore: 90}
	assert.Equal(t, len(RowHeader), len(r.Values()))
	assert.Equal(t, []string{"2024-01-01", "2023", "Final", "A", "100", "B", "90"}, r.Values())
	assert.Equal(t, "", Row{}.Values()[1])
}

func TestAttachAppearancesMergesAndCopies(t *testing.T) {
	in := sampleGames()
	out := AttachAppearances(in, []games.Appearance{
		{GameID: "3", PlayerID: "pz"},
		{GameID: "4", PlayerID: "pb"},
		{GameID: "4", PlayerID: "pa"},
		{GameID: "missing", PlayerID: "px"},
	})

	assert.Equal(t, []string{"pz"}, out[2].PlayerIDs)
	assert.Equal(t, []string{"pa", "pb", "pd"}, out[3].PlayerIDs)
	assert.Equal(t, []string{"pa", "pd"}, in[3].PlayerIDs, "input untouched")
	assert.Nil(t, in[2].PlayerIDs)
}
