package games

import (
	"context"
	"fmt"

	domaingames "github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
)

// Service loads and validates games and box-score appearances.
type Service struct {
	provider providers.DataProvider
}

// NewService constructs a Service backed by the given provider.
func NewService(provider providers.DataProvider) *Service {
	return &Service{provider: provider}
}

// Games returns validated games for the query.
func (s *Service) Games(ctx context.Context, q providers.GameQuery) ([]domaingames.Game, error) {
	if s == nil || s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	recs, err := s.provider.FetchGames(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	items, err := processing.ValidateGames(recs)
	if err != nil {
		return nil, fmt.Errorf("validate games: %w", err)
	}
	return items, nil
}

// Appearances returns validated box-score rows for the query players.
func (s *Service) Appearances(ctx context.Context, q providers.AppearanceQuery) ([]domaingames.Appearance, error) {
	if s == nil || s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	if len(q.PlayerIDs) == 0 {
		return nil, nil
	}
	recs, err := s.provider.FetchAppearances(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch appearances: %w", err)
	}
	items, err := processing.ValidateAppearances(recs)
	if err != nil {
		return nil, fmt.Errorf("validate appearances: %w", err)
	}
	return items, nil
}
