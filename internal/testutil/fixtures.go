package testutil

import "github.com/preston-bernstein/nba-explorer/internal/raw"

// Sample league: four teams (A-D), one player per team, four games in early
// January 2024. Player "pa" (team A) sat out game 4.

// SampleTeamRecords returns raw team records for teams A-D.
func SampleTeamRecords() []raw.Record {
	return []raw.Record{
		{"id": "A", "name": "Alpha", "abbreviation": "ALP"},
		{"id": "B", "name": "Bravo", "abbreviation": "BRV"},
		{"id": "C", "name": "Charlie", "abbreviation": "CHA"},
		{"id": "D", "name": "Delta", "abbreviation": "DEL"},
	}
}

// SamplePlayerRecords returns one raw player record per sample team.
func SamplePlayerRecords() []raw.Record {
	return []raw.Record{
		{"id": "pa", "name": "Player Alpha", "team_id": "A"},
		{"id": "pb", "name": "Player Bravo", "team_id": "B"},
		{"id": "pc", "name": "Player Charlie", "team_id": "C"},
		{"id": "pd", "name": "Player Delta", "team_id": "D"},
	}
}

// SampleGameRecords returns raw game records with numeric ids, as JSON would decode them.
func SampleGameRecords() []raw.Record {
	return []raw.Record{
		{"game_id": float64(1), "date": "2024-01-01", "home_team_id": "A", "away_team_id": "B", "home_score": float64(100), "away_score": float64(90)},
		{"game_id": float64(2), "date": "2024-01-05", "home_team_id": "B", "away_team_id": "C", "home_score": float64(80), "away_score": float64(95)},
		{"game_id": float64(3), "date": "2024-01-03", "home_team_id": "C", "away_team_id": "D", "home_score": float64(110), "away_score": float64(104)},
		{"game_id": float64(4), "date": "2024-01-03", "home_team_id": "D", "away_team_id": "A", "home_score": float64(99), "away_score": float64(101)},
	}
}

// SampleAppearanceRecords returns box-score rows for the sample games.
func SampleAppearanceRecords() []raw.Record {
	return []raw.Record{
		{"game_id": float64(1), "player_id": "pa"},
		{"game_id": float64(1), "player_id": "pb"},
		{"game_id": float64(2), "player_id": "pb"},
		{"game_id": float64(2), "player_id": "pc"},
		{"game_id": float64(3), "player_id": "pc"},
		{"game_id": float64(3), "player_id": "pd"},
		{"game_id": float64(4), "player_id": "pd"},
	}
}
