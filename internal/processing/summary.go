package processing

import (
	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// Summary aggregates a filtered selection for display.
type Summary struct {
	Games              int           `json:"games"`
	Teams              int           `json:"teams"`
	Players            int           `json:"players"`
	AverageHomeScore   float64       `json:"averageHomeScore"`
	AverageAwayScore   float64       `json:"averageAwayScore"`
	AverageTotalPoints float64       `json:"averageTotalPoints"`
	FirstDate          timeutil.Date `json:"firstDate"`
	LastDate           timeutil.Date `json:"lastDate"`
	SpanDays           int           `json:"spanDays"`
}

// Summarize counts games, the teams that played in them and the players represented
// (box-score participants plus roster players of those teams). Empty input gives a zero Summary.
func Summarize(items []games.Game, roster []players.Player) Summary {
	if len(items) == 0 {
		return Summary{}
	}

	teamIDs := IDSet{}
	playerIDs := IDSet{}
	var home, away int
	first, last := items[0].Date, items[0].Date

	for _, g := range items {
		teamIDs[g.HomeTeamID] = struct{}{}
		teamIDs[g.AwayTeamID] = struct{}{}
		for _, id := range g.PlayerIDs {
			playerIDs[id] = struct{}{}
		}
		home += g.HomeScore
		away += g.AwayScore
		if g.Date.Before(first) {
			first = g.Date
		}
		if g.Date.After(last) {
			last = g.Date
		}
	}
	for _, p := range roster {
		if teamIDs.Has(p.TeamID) {
			playerIDs[p.ID] = struct{}{}
		}
	}

	n := float64(len(items))
	return Summary{
		Games:              len(items),
		Teams:              len(teamIDs),
		Players:            len(playerIDs),
		AverageHomeScore:   float64(home) / n,
		AverageAwayScore:   float64(away) / n,
		AverageTotalPoints: float64(home+away) / n,
		FirstDate:          first,
		LastDate:           last,
		SpanDays:           first.DaysUntil(last) + 1,
	}
}
