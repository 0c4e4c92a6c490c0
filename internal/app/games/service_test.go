package games

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
	"github.com/preston-bernstein/nba-explorer/internal/raw"
	"github.com/preston-bernstein/nba-explorer/internal/testutil"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

func TestGamesPassesQueryAndValidates(t *testing.T) {
	provider := testutil.NewSampleProvider()
	q := providers.GameQuery{
		Start:   timeutil.MustParseDay("2024-01-01"),
		End:     timeutil.MustParseDay("2024-01-31"),
		TeamIDs: []string{"A"},
	}

	items, err := NewService(provider).Games(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 games, got %d", len(items))
	}
	if items[0].ID != "1" || items[0].HomeScore != 100 {
		t.Fatalf("unexpected first game %+v", items[0])
	}
	if provider.LastGameQuery.Start != q.Start || len(provider.LastGameQuery.TeamIDs) != 1 {
		t.Fatalf("expected query to reach provider, got %+v", provider.LastGameQuery)
	}
}

func TestGamesRejectsInvalidBatch(t *testing.T) {
	provider := &testutil.StubProvider{Games: []raw.Record{
		{"game_id": 1, "date": "2024-01-01", "home_team_id": "A", "away_team_id": "B", "home_score": 1, "away_score": 2},
		{"date": "2024-01-02", "home_team_id": "A", "away_team_id": "B", "home_score": 1, "away_score": 2},
	}}

	items, err := NewService(provider).Games(context.Background(), providers.GameQuery{})
	if items != nil {
		t.Fatalf("expected no games on failure, got %+v", items)
	}
	vErr, ok := processing.AsValidationError(err)
	if !ok || vErr.Index != 1 || vErr.Field != processing.FieldGameID {
		t.Fatalf("expected game_id failure on record 1, got %v", err)
	}
}

func TestAppearancesSkipsEmptyPlayerList(t *testing.T) {
	provider := testutil.NewSampleProvider()

	items, err := NewService(provider).Appearances(context.Background(), providers.AppearanceQuery{})
	if err != nil || items != nil {
		t.Fatalf("expected nothing for empty player list, got %v / %v", items, err)
	}
	if provider.Calls.Load() != 0 {
		t.Fatalf("expected no provider calls, got %d", provider.Calls.Load())
	}
}

func TestAppearancesValidates(t *testing.T) {
	provider := testutil.NewSampleProvider()

	items, err := NewService(provider).Appearances(context.Background(), providers.AppearanceQuery{PlayerIDs: []string{"pa"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 7 || items[0].GameID != "1" {
		t.Fatalf("unexpected appearances %+v", items)
	}
}

func TestGamesWrapsProviderErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&testutil.StubProvider{GamesErr: boom}).Games(context.Background(), providers.GameQuery{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}
