package players

import (
	"context"
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
)

// Service searches and validates players.
type Service struct {
	provider providers.DataProvider
}

// NewService constructs a Service backed by the given provider.
func NewService(provider providers.DataProvider) *Service {
	return &Service{provider: provider}
}

// Search returns players matching the search text as the provider interprets it.
func (s *Service) Search(ctx context.Context, search string) ([]players.Player, error) {
	if s == nil || s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	recs, err := s.provider.FetchPlayers(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}
	items, err := processing.ValidatePlayers(recs)
	if err != nil {
		return nil, fmt.Errorf("validate players: %w", err)
	}
	return items, nil
}
