package games

import "github.com/preston-bernstein/nba-explorer/internal/timeutil"

// Game is one validated game result (or scheduled game with zero scores).
type Game struct {
	ID           string        `json:"id"`
	Date         timeutil.Date `json:"date"`
	HomeTeamID   string        `json:"homeTeamId"`
	AwayTeamID   string        `json:"awayTeamId"`
	HomeScore    int           `json:"homeScore"`
	AwayScore    int           `json:"awayScore"`
	HomeTeamName string        `json:"homeTeamName,omitempty"`
	AwayTeamName string        `json:"awayTeamName,omitempty"`
	Season       int           `json:"season,omitempty"`
	Status       string        `json:"status,omitempty"`
	// PlayerIDs lists box-score participants when appearance data was attached.
	PlayerIDs []string `json:"playerIds,omitempty"`
}

// Involves reports whether the team played in the game.
func (g Game) Involves(teamID string) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// TotalPoints is the combined score of both teams.
func (g Game) TotalPoints() int {
	return g.HomeScore + g.AwayScore
}

// Appearance records that a player took part in a game.
type Appearance struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}
