package processing

import (
	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
)

// Kind tags which entity a Record carries.
type Kind string

const (
	KindTeam       Kind = "team"
	KindPlayer     Kind = "player"
	KindGame       Kind = "game"
	KindAppearance Kind = "appearance"
)

// Record is a validated entity. Exactly the payload matching Kind is populated.
type Record struct {
	Kind       Kind
	Team       teams.Team
	Player     players.Player
	Game       games.Game
	Appearance games.Appearance
}

// ID returns the identifier of the carried entity.
func (r Record) ID() string {
	switch r.Kind {
	case KindTeam:
		return r.Team.ID
	case KindPlayer:
		return r.Player.ID
	case KindGame:
		return r.Game.ID
	case KindAppearance:
		return r.Appearance.GameID + "/" + r.Appearance.PlayerID
	default:
		return ""
	}
}
