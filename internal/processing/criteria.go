package processing

import (
	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// Criteria is the user's selection for one render. It is passed explicitly on every call.
type Criteria struct {
	TeamIDs      IDSet
	PlayerIDs    IDSet
	Start        timeutil.Date
	End          timeutil.Date
	PlayerPolicy PlayerPolicy
}

// Validate checks the date range and player policy.
func (c Criteria) Validate() error {
	if err := checkRange(c.Start, c.End); err != nil {
		return err
	}
	_, err := ParsePlayerPolicy(string(c.PlayerPolicy))
	return err
}

// Apply validates the criteria and runs every filter. Filters are independent predicates,
// so the order they run in does not change the result.
func Apply(items []games.Game, c Criteria, roster []players.Player) ([]games.Game, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out, err := FilterByDateRange(items, c.Start, c.End)
	if err != nil {
		return nil, err
	}
	out = FilterByTeams(out, c.TeamIDs)
	return FilterByPlayers(out, c.PlayerIDs, roster, c.PlayerPolicy)
}
