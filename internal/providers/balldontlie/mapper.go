package balldontlie

import (
	"strings"

	"github.com/preston-bernstein/nba-explorer/internal/raw"
)

// The mappers flatten upstream payloads into the record fields the
// validators read. Values are copied as decoded; type checks happen later.

func mapTeam(t raw.Record) raw.Record {
	out := raw.Record{}
	copyField(out, "id", t, "id")
	copyField(out, "name", t, "full_name")
	copyField(out, "abbreviation", t, "abbreviation")
	copyField(out, "city", t, "city")
	copyField(out, "conference", t, "conference")
	copyField(out, "division", t, "division")
	return out
}

func mapPlayer(p raw.Record) raw.Record {
	out := raw.Record{}
	copyField(out, "id", p, "id")
	if name := playerName(p); name != "" {
		out["name"] = name
	}
	copyField(out, "team_id", p, "team", "id")
	copyField(out, "position", p, "position")
	return out
}

func mapGame(g raw.Record) raw.Record {
	out := raw.Record{}
	copyField(out, "game_id", g, "id")
	copyField(out, "date", g, "date")
	copyField(out, "home_team_id", g, "home_team", "id")
	copyField(out, "away_team_id", g, "visitor_team", "id")
	copyField(out, "home_score", g, "home_team_score")
	copyField(out, "away_score", g, "visitor_team_score")
	copyField(out, "home_team_name", g, "home_team", "full_name")
	copyField(out, "away_team_name", g, "visitor_team", "full_name")
	copyField(out, "season", g, "season")
	copyField(out, "status", g, "status")
	return out
}

func mapStat(s raw.Record) raw.Record {
	out := raw.Record{}
	copyField(out, "game_id", s, "game", "id")
	copyField(out, "player_id", s, "player", "id")
	return out
}

func copyField(dst raw.Record, key string, src raw.Record, path ...string) {
	if v, ok := src.Lookup(path...); ok {
		dst[key] = v
	}
}

func playerName(p raw.Record) string {
	var parts []string
	for _, key := range []string{"first_name", "last_name"} {
		if v, ok := p[key].(string); ok && strings.TrimSpace(v) != "" {
			parts = append(parts, strings.TrimSpace(v))
		}
	}
	return strings.Join(parts, " ")
}

// hasTeam reports whether a player payload carries a team; free agents do not.
func hasTeam(p raw.Record) bool {
	_, ok := p.Lookup("team", "id")
	return ok
}
