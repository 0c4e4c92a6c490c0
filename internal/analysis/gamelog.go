// Package analysis derives per-team views (game log, KPIs, trends, rankings) from a filtered selection of games.
package analysis

import (
	"sort"

	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// The upstream game feed has no assist or rebound totals, so both are estimated from points.
const (
	astPerPoint      = 0.60
	rebPerTotalPoint = 0.22
)

// LogEntry is one team's line for one game.
type LogEntry struct {
	Date           timeutil.Date `json:"date"`
	GameID         string        `json:"gameId"`
	TeamID         string        `json:"teamId"`
	Team           string        `json:"team"`
	OpponentID     string        `json:"opponentId"`
	Opponent       string        `json:"opponent"`
	Points         int           `json:"points"`
	OpponentPoints int           `json:"opponentPoints"`
	PointDiff      int           `json:"pointDiff"`
	NetRatingProxy float64       `json:"netRatingProxy"`
	AstProxy       float64       `json:"astProxy"`
	RebProxy       float64       `json:"rebProxy"`
}

// TeamGameLog expands each played game into a home line and an away line.
// Games where neither side has scored are treated as unplayed and skipped.
func TeamGameLog(items []games.Game, teamIdx map[string]teams.Team) []LogEntry {
	log := make([]LogEntry, 0, len(items)*2)
	for _, g := range items {
		if g.HomeScore == 0 && g.AwayScore == 0 {
			continue
		}
		home := name(teamIdx, g.HomeTeamID, g.HomeTeamName)
		away := name(teamIdx, g.AwayTeamID, g.AwayTeamName)
		log = append(log,
			entry(g, g.HomeTeamID, home, g.AwayTeamID, away, g.HomeScore, g.AwayScore),
			entry(g, g.AwayTeamID, away, g.HomeTeamID, home, g.AwayScore, g.HomeScore),
		)
	}
	sort.SliceStable(log, func(i, j int) bool {
		if log[i].Date != log[j].Date {
			return log[i].Date.Before(log[j].Date)
		}
		return log[i].Team < log[j].Team
	})
	return log
}

// FilterLog keeps entries for the selected teams; an empty selection keeps everything.
func FilterLog(log []LogEntry, teamIDs processing.IDSet) []LogEntry {
	out := make([]LogEntry, 0, len(log))
	for _, e := range log {
		if len(teamIDs) == 0 || teamIDs.Has(e.TeamID) {
			out = append(out, e)
		}
	}
	return out
}

func entry(g games.Game, teamID, team, oppID, opp string, pts, oppPts int) LogEntry {
	diff := pts - oppPts
	return LogEntry{
		Date:           g.Date,
		GameID:         g.ID,
		TeamID:         teamID,
		Team:           team,
		OpponentID:     oppID,
		Opponent:       opp,
		Points:         pts,
		OpponentPoints: oppPts,
		PointDiff:      diff,
		AstProxy:       float64(pts) * astPerPoint,
		RebProxy:       float64(pts+oppPts) * rebPerTotalPoint,
		// Callers skip 0-0 games, so possessions is positive.
		NetRatingProxy: float64(diff) / (float64(pts+oppPts) / 2) * 100,
	}
}

func name(idx map[string]teams.Team, id, carried string) string {
	if t, ok := idx[id]; ok && t.Name != "" {
		return t.Name
	}
	if carried != "" {
		return carried
	}
	return id
}
