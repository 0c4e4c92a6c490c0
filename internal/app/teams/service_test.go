package teams

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
	"github.com/preston-bernstein/nba-explorer/internal/raw"
	"github.com/preston-bernstein/nba-explorer/internal/testutil"
)

func TestTeamsServiceSortsByName(t *testing.T) {
	provider := &testutil.StubProvider{Teams: []raw.Record{
		{"id": 2, "name": "Celtics", "abbreviation": "BOS"},
		{"id": 1, "name": "Bulls", "abbreviation": "CHI"},
	}}

	items, err := NewService(provider).Teams(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Bulls" || items[0].ID != "1" {
		t.Fatalf("expected teams sorted by name, got %+v", items)
	}
}

func TestTeamsServiceWrapsValidationErrors(t *testing.T) {
	provider := &testutil.StubProvider{Teams: []raw.Record{{"id": 1, "abbreviation": "CHI"}}}

	_, err := NewService(provider).Teams(context.Background())
	vErr, ok := processing.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Field != processing.FieldName {
		t.Fatalf("expected name field failure, got %+v", vErr)
	}
}

func TestTeamsServiceWrapsProviderErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&testutil.StubProvider{TeamsErr: boom}).Teams(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestTeamsServiceWithoutProvider(t *testing.T) {
	_, err := NewService(nil).Teams(context.Background())
	if !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
