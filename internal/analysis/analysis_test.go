package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

func day(s string) timeutil.Date { return timeutil.MustParseDay(s) }

var teamIdx = teams.Index([]teams.Team{
	{ID: "A", Name: "Alpha"},
	{ID: "B", Name: "Bravo"},
	{ID: "C", Name: "Charlie"},
})

func fixtureGames() []games.Game {
	return []games.Game{
		{ID: "1", Date: day("2024-01-01"), HomeTeamID: "A", AwayTeamID: "B", HomeScore: 100, AwayScore: 90},
		{ID: "2", Date: day("2024-01-02"), HomeTeamID: "B", AwayTeamID: "C", HomeScore: 80, AwayScore: 120},
		{ID: "3", Date: day("2024-01-03"), HomeTeamID: "C", AwayTeamID: "A", HomeScore: 0, AwayScore: 0},
	}
}

func TestTeamGameLogExpandsPlayedGames(t *testing.T) {
	log := TeamGameLog(fixtureGames(), teamIdx)
	require.Len(t, log, 4, "unplayed game is skipped")

	first := log[0]
	assert.Equal(t, "Alpha", first.Team)
	assert.Equal(t, "Bravo", first.Opponent)
	assert.Equal(t, 10, first.PointDiff)
	assert.InDelta(t, 10.0/95.0*100, first.NetRatingProxy, 1e-9)
	assert.InDelta(t, 60.0, first.AstProxy, 1e-9)
	assert.InDelta(t, 190*0.22, first.RebProxy, 1e-9)

	assert.Equal(t, "Bravo", log[1].Team)
	assert.Equal(t, -10, log[1].PointDiff)
	assert.Equal(t, day("2024-01-02"), log[2].Date)
	for _, e := range log {
		assert.NotEqual(t, "3", e.GameID, "0-0 game is treated as unplayed")
	}
}

func TestTeamGameLogEmpty(t *testing.T) {
	assert.Empty(t, TeamGameLog(nil, nil))
	assert.Equal(t, KPIs{}, ComputeKPIs(nil))
	assert.Empty(t, Trend(nil))
	assert.Empty(t, Rankings(nil))
}

func TestFilterLogBySelectedTeams(t *testing.T) {
	log := TeamGameLog(fixtureGames(), teamIdx)
	assert.Len(t, FilterLog(log, nil), 4)
	got := FilterLog(log, processing.NewIDSet("B"))
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, "B", e.TeamID)
	}
}

func TestComputeKPIsAndTrend(t *testing.T) {
	log := TeamGameLog(fixtureGames(), teamIdx)
	k := ComputeKPIs(log)
	assert.InDelta(t, 97.5, k.PPG, 1e-9)

	trend := Trend(log)
	require.Len(t, trend, 2)
	assert.Equal(t, day("2024-01-01"), trend[0].Date)
	assert.InDelta(t, 95.0, trend[0].PPG, 1e-9)
	assert.InDelta(t, 100.0, trend[1].PPG, 1e-9)
	assert.InDelta(t, 0.0, trend[0].NetRatingProxy, 1e-9)
}

func TestRankingsOrderedByPPG(t *testing.T) {
	rs := Rankings(TeamGameLog(fixtureGames(), teamIdx))
	require.Len(t, rs, 3)
	assert.Equal(t, "Charlie", rs[0].Team)
	assert.Equal(t, 1, rs[0].Rank)
	assert.Equal(t, "Alpha", rs[1].Team)
	assert.Equal(t, "Bravo", rs[2].Team)
	assert.Equal(t, 2, rs[2].Games)
	assert.InDelta(t, 85.0, rs[2].PPG, 1e-9)

	filtered := FilterRankings(rs, nil, 90)
	require.Len(t, filtered, 2)
	assert.Equal(t, 2, filtered[1].Rank)

	filtered = FilterRankings(rs, processing.NewIDSet("B"), 0)
	require.Len(t, filtered, 1)
	assert.Equal(t, 3, filtered[0].Rank)
}

func TestTeamTrendsComparesWindows(t *testing.T) {
	var log []LogEntry
	for i, pts := range []int{100, 102, 110, 120} {
		log = append(log, LogEntry{
			Date:           day("2024-01-01").AddDays(i),
			TeamID:         "A",
			Team:           "Alpha",
			Points:         pts,
			OpponentPoints: 100,
		})
	}
	log = append(log, LogEntry{Date: day("2024-01-01"), TeamID: "B", Team: "Bravo", Points: 90, OpponentPoints: 95})

	trends := TeamTrends(log, 2)
	require.Len(t, trends, 2)

	a := trends[0]
	assert.Equal(t, "Alpha", a.Team)
	require.NotNil(t, a.OffenseDelta)
	assert.InDelta(t, 14.0, *a.OffenseDelta, 1e-9)
	assert.InDelta(t, 0.0, *a.DefenseDelta, 1e-9)
	assert.InDelta(t, 14.0, *a.NetDelta, 1e-9)
	assert.Equal(t, 2, a.SamplesRecent)
	assert.Equal(t, 2, a.SamplesPrior)

	b := trends[1]
	require.NotNil(t, b.RecentPPG)
	assert.Nil(t, b.PriorPPG)
	assert.Nil(t, b.NetDelta)
	assert.Equal(t, 0, b.SamplesPrior)
}

func TestCSVExports(t *testing.T) {
	var buf bytes.Buffer
	rows := processing.Rows(fixtureGames()[:1], teamIdx)
	require.NoError(t, GameRowsCSV(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(processing.RowHeader, ","), lines[0])
	assert.Equal(t, "2024-01-01,,,Alpha,100,Bravo,90", lines[1])

	buf.Reset()
	require.NoError(t, RankingsCSV(&buf, []Ranking{{Rank: 1, Team: "Alpha, The", Games: 2, KPIs: KPIs{PPG: 101.234}}}))
	assert.Contains(t, buf.String(), `1,"Alpha, The",2,101.23,0.00,0.00,0.00`)
}
