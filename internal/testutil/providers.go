package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/nba-explorer/internal/providers"
	"github.com/preston-bernstein/nba-explorer/internal/raw"
)

// StubProvider serves canned raw records. Err fails every call; the
// per-resource errors fail just that fetch.
type StubProvider struct {
	Teams       []raw.Record
	Players     []raw.Record
	Games       []raw.Record
	Appearances []raw.Record

	Err            error
	TeamsErr       error
	PlayersErr     error
	GamesErr       error
	AppearancesErr error

	Calls           atomic.Int32
	LastSearch      string
	LastGameQuery   providers.GameQuery
	LastAppearQuery providers.AppearanceQuery
}

var _ providers.DataProvider = (*StubProvider)(nil)

func (s *StubProvider) FetchTeams(ctx context.Context) ([]raw.Record, error) {
	if err := s.begin(ctx, s.TeamsErr); err != nil {
		return nil, err
	}
	return s.Teams, nil
}

func (s *StubProvider) FetchPlayers(ctx context.Context, search string) ([]raw.Record, error) {
	if err := s.begin(ctx, s.PlayersErr); err != nil {
		return nil, err
	}
	s.LastSearch = search
	return s.Players, nil
}

func (s *StubProvider) FetchGames(ctx context.Context, q providers.GameQuery) ([]raw.Record, error) {
	if err := s.begin(ctx, s.GamesErr); err != nil {
		return nil, err
	}
	s.LastGameQuery = q
	return s.Games, nil
}

func (s *StubProvider) FetchAppearances(ctx context.Context, q providers.AppearanceQuery) ([]raw.Record, error) {
	if err := s.begin(ctx, s.AppearancesErr); err != nil {
		return nil, err
	}
	s.LastAppearQuery = q
	return s.Appearances, nil
}

func (s *StubProvider) begin(ctx context.Context, specific error) error {
	s.Calls.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Err != nil {
		return s.Err
	}
	return specific
}

// NewSampleProvider returns a StubProvider loaded with the sample league.
func NewSampleProvider() *StubProvider {
	return &StubProvider{
		Teams:       SampleTeamRecords(),
		Players:     SamplePlayerRecords(),
		Games:       SampleGameRecords(),
		Appearances: SampleAppearanceRecords(),
	}
}
