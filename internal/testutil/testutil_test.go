package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
)

func TestNowAt(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
}

func TestSampleLeagueValidates(t *testing.T) {
	if _, err := processing.ValidateTeams(SampleTeamRecords()); err != nil {
		t.Fatalf("teams: %v", err)
	}
	if _, err := processing.ValidatePlayers(SamplePlayerRecords()); err != nil {
		t.Fatalf("players: %v", err)
	}
	items, err := processing.ValidateGames(SampleGameRecords())
	if err != nil {
		t.Fatalf("games: %v", err)
	}
	if len(items) != 4 || items[0].ID != "1" {
		t.Fatalf("unexpected games %+v", items)
	}
	if _, err := processing.ValidateAppearances(SampleAppearanceRecords()); err != nil {
		t.Fatalf("appearances: %v", err)
	}
}

func TestStubProviderRecordsQueriesAndErrors(t *testing.T) {
	p := NewSampleProvider()
	ctx := context.Background()

	if _, err := p.FetchPlayers(ctx, "alpha"); err != nil || p.LastSearch != "alpha" {
		t.Fatalf("expected search recorded, got %q (%v)", p.LastSearch, err)
	}
	q := providers.GameQuery{TeamIDs: []string{"A"}}
	if _, err := p.FetchGames(ctx, q); err != nil || len(p.LastGameQuery.TeamIDs) != 1 {
		t.Fatalf("expected game query recorded, got %+v (%v)", p.LastGameQuery, err)
	}

	p.AppearancesErr = errors.New("boom")
	if _, err := p.FetchAppearances(ctx, providers.AppearanceQuery{}); err == nil {
		t.Fatalf("expected per-resource error")
	}
	p.Err = providers.ErrProviderUnavailable
	if _, err := p.FetchTeams(ctx); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected global error, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := p.FetchTeams(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if got := p.Calls.Load(); got != 5 {
		t.Fatalf("expected 5 calls counted, got %d", got)
	}
}

func TestManualClockAdvances(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)
	clock.Advance(90 * time.Second)
	if got := clock.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Fatalf("expected advanced clock, got %v", got)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Method", r.Method)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	AssertHeader(t, rr, "X-Method", http.MethodPost)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	AssertHeader(t, ServeRequest(handler, req), "X-Method", http.MethodGet)
}

func TestBufferLoggerCapturesDebug(t *testing.T) {
	logger, sink := NewBufferLogger()
	logger.Debug("cache miss", "key", "teams")
	if out := sink.String(); !strings.Contains(out, "cache miss") || !strings.Contains(out, "key=teams") {
		t.Fatalf("expected debug output, got %s", out)
	}
}

func TestFakeHTTPServer(t *testing.T) {
	ctx := context.Background()

	fake := &FakeHTTPServer{ListenErr: errors.New("listen failure")}
	if fake.ListenAndServe() == nil || fake.Shutdown(ctx) != nil {
		t.Fatalf("unexpected fake behaviour")
	}
	if fake.Addr() != ":0" || fake.Handler() == nil {
		t.Fatalf("expected defaults for address and handler")
	}
	if fake.ListenCalls() != 1 || fake.ShutdownCalls() != 1 {
		t.Fatalf("expected calls counted, got %d/%d", fake.ListenCalls(), fake.ShutdownCalls())
	}

	held := &FakeHTTPServer{HoldShutdown: make(chan struct{})}
	close(held.HoldShutdown)
	if err := held.Shutdown(ctx); err != nil {
		t.Fatalf("expected released shutdown, got %v", err)
	}

	stuck := &FakeHTTPServer{HoldShutdown: make(chan struct{})}
	expired, cancel := context.WithTimeout(ctx, time.Millisecond)
	defer cancel()
	if err := stuck.Shutdown(expired); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
