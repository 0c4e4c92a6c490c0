package providers

import (
	"context"

	"github.com/preston-bernstein/nba-explorer/internal/raw"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// GameQuery narrows an upstream games request. Zero dates and an empty team
// list leave that dimension unrestricted.
type GameQuery struct {
	Start   timeutil.Date
	End     timeutil.Date
	TeamIDs []string
}

// AppearanceQuery selects box-score rows within a date range, either for
// the given players or, when PlayerIDs is empty, for the given games.
type AppearanceQuery struct {
	PlayerIDs []string
	GameIDs   []string
	Start     timeutil.Date
	End       timeutil.Date
}

// DataProvider fetches unvalidated records from an upstream source. Records
// follow the flat field contract understood by processing validators; the
// provider does not type-check values.
type DataProvider interface {
	FetchTeams(ctx context.Context) ([]raw.Record, error)
	FetchPlayers(ctx context.Context, search string) ([]raw.Record, error)
	FetchGames(ctx context.Context, q GameQuery) ([]raw.Record, error)
	FetchAppearances(ctx context.Context, q AppearanceQuery) ([]raw.Record, error)
}
