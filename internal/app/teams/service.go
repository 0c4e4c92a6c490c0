package teams

import (
	"context"
	"fmt"
	"sort"

	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
)

// Service loads and validates the team catalogue.
type Service struct {
	provider providers.DataProvider
}

// NewService constructs a Service backed by the given provider.
func NewService(provider providers.DataProvider) *Service {
	return &Service{provider: provider}
}

// Teams returns every team sorted by name.
func (s *Service) Teams(ctx context.Context) ([]teams.Team, error) {
	if s == nil || s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	recs, err := s.provider.FetchTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	items, err := processing.ValidateTeams(recs)
	if err != nil {
		return nil, fmt.Errorf("validate teams: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}
