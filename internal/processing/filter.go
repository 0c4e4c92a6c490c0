package processing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// IDSet is a set of entity ids. A nil or empty set means "no restriction".
type IDSet map[string]struct{}

// NewIDSet builds a set, skipping blank ids.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in lexical order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// PlayerPolicy decides how a selected player is associated with a game.
type PlayerPolicy string

const (
	// PolicyRoster matches games played by the player's current team.
	PolicyRoster PlayerPolicy = "roster"
	// PolicyParticipation matches games where the player appears in the box score.
	PolicyParticipation PlayerPolicy = "participation"
)

// ParsePlayerPolicy resolves a policy name; empty means roster.
func ParsePlayerPolicy(name string) (PlayerPolicy, error) {
	switch PlayerPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyRoster:
		return PolicyRoster, nil
	case PolicyParticipation:
		return PolicyParticipation, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// FilterByTeams keeps games where the home or away team is selected.
func FilterByTeams(items []games.Game, teamIDs IDSet) []games.Game {
	if len(teamIDs) == 0 {
		return slices.Clone(items)
	}
	return keep(items, func(g games.Game) bool {
		return teamIDs.Has(g.HomeTeamID) || teamIDs.Has(g.AwayTeamID)
	})
}

// FilterByPlayers keeps games associated with any selected player under the given policy.
// Roster matching needs the roster; participation matching needs games with PlayerIDs attached.
func FilterByPlayers(items []games.Game, playerIDs IDSet, roster []players.Player, policy PlayerPolicy) ([]games.Game, error) {
	if len(playerIDs) == 0 {
		return slices.Clone(items), nil
	}
	switch policy {
	case "", PolicyRoster:
		teamIDs := IDSet(players.TeamsOf(roster, playerIDs))
		return keep(items, func(g games.Game) bool {
			return teamIDs.Has(g.HomeTeamID) || teamIDs.Has(g.AwayTeamID)
		}), nil
	case PolicyParticipation:
		return keep(items, func(g games.Game) bool {
			for _, id := range g.PlayerIDs {
				if playerIDs.Has(id) {
					return true
				}
			}
			return false
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

// FilterByDateRange keeps games dated within [start, end], both inclusive.
// A zero bound is open. An inverted range fails before any filtering.
func FilterByDateRange(items []games.Game, start, end timeutil.Date) ([]games.Game, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if start.IsZero() && end.IsZero() {
		return slices.Clone(items), nil
	}
	return keep(items, func(g games.Game) bool {
		if !start.IsZero() && g.Date.Before(start) {
			return false
		}
		if !end.IsZero() && g.Date.After(end) {
			return false
		}
		return true
	}), nil
}

func checkRange(start, end timeutil.Date) error {
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return &InvalidRangeError{Start: start, End: end}
	}
	return nil
}

func keep(items []games.Game, pred func(games.Game) bool) []games.Game {
	out := make([]games.Game, 0, len(items))
	for _, g := range items {
		if pred(g) {
			out = append(out, g)
		}
	}
	return out
}
