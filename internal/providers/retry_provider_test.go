package providers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nba-explorer/internal/metrics"
	"github.com/preston-bernstein/nba-explorer/internal/raw"
)

// stubProvider fails the first `failures` calls with err (or "boom").
type stubProvider struct {
	failures int
	err      error
	calls    int
	teams    []raw.Record
	players  []raw.Record
	games    []raw.Record
	apps     []raw.Record
}

func (s *stubProvider) next() error {
	s.calls++
	if s.calls <= s.failures {
		if s.err != nil {
			return s.err
		}
		return errors.New("boom")
	}
	return nil
}

func (s *stubProvider) FetchTeams(context.Context) ([]raw.Record, error) {
	if err := s.next(); err != nil {
		return nil, err
	}
	return s.teams, nil
}

func (s *stubProvider) FetchPlayers(context.Context, string) ([]raw.Record, error) {
	if err := s.next(); err != nil {
		return nil, err
	}
	return s.players, nil
}

func (s *stubProvider) FetchGames(context.Context, GameQuery) ([]raw.Record, error) {
	if err := s.next(); err != nil {
		return nil, err
	}
	return s.games, nil
}

func (s *stubProvider) FetchAppearances(context.Context, AppearanceQuery) ([]raw.Record, error) {
	if err := s.next(); err != nil {
		return nil, err
	}
	return s.apps, nil
}

func newTestRetrying(inner DataProvider, rec *metrics.Recorder, attempts int) *retryingProvider {
	rp := NewRetryingProvider(inner, nil, rec, "stub", attempts, time.Millisecond).(*retryingProvider)
	rp.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return rp
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	sp := &stubProvider{failures: 2, games: []raw.Record{{"game_id": "ok"}}}
	rp := newTestRetrying(sp, metrics.NewRecorder(), 3)

	recs, err := rp.FetchGames(context.Background(), GameQuery{})
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(recs) != 1 || recs[0]["game_id"] != "ok" {
		t.Fatalf("unexpected records %+v", recs)
	}
	if sp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", sp.calls)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	sp := &stubProvider{failures: 5}
	rec := metrics.NewRecorder()
	rp := newTestRetrying(sp, rec, 2)

	if _, err := rp.FetchTeams(context.Background()); err == nil {
		t.Fatal("expected error after retries")
	}
	if sp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", sp.calls)
	}
	if snap := rec.Snapshot("stub"); snap.Calls != 2 || snap.Errors != 2 {
		t.Fatalf("unexpected metrics %+v", snap)
	}
}

func TestRetryingProviderDoesNotRetryClientErrors(t *testing.T) {
	sp := &stubProvider{failures: 5, err: &StatusError{Provider: "stub", StatusCode: http.StatusUnauthorized}}
	rp := newTestRetrying(sp, metrics.NewRecorder(), 3)

	_, err := rp.FetchPlayers(context.Background(), "")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if sp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", sp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	sp := &stubProvider{failures: 5}
	rp := NewRetryingProvider(sp, nil, metrics.NewRecorder(), "stub", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rp.FetchGames(ctx, GameQuery{}); err == nil {
		t.Fatal("expected context error")
	}
	if sp.calls > 1 {
		t.Fatalf("expected no retries after cancel, got %d calls", sp.calls)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	sp := &stubProvider{
		failures: 1,
		err:      &RateLimitError{StatusCode: http.StatusTooManyRequests, RetryAfter: time.Millisecond},
		apps:     []raw.Record{{"game_id": 1, "player_id": 2}},
	}
	rp := newTestRetrying(sp, rec, 2)

	recs, err := rp.FetchAppearances(context.Background(), AppearanceQuery{})
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("unexpected records %+v", recs)
	}

	snap := rec.Snapshot("stub")
	if snap.RateLimitHits != 1 || snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected metrics %+v", snap)
	}
	if snap.LastRetryAfter != time.Millisecond {
		t.Fatalf("expected retry-after to be recorded, got %s", snap.LastRetryAfter)
	}
}

func TestRetryingProviderGivesUpOnLongRetryAfter(t *testing.T) {
	sp := &stubProvider{failures: 5, err: &RateLimitError{RetryAfter: time.Hour}}
	rp := newTestRetrying(sp, metrics.NewRecorder(), 3)

	_, err := rp.FetchTeams(context.Background())
	if _, ok := AsRateLimitError(err); !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if sp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", sp.calls)
	}
}

func TestRetryAfterBackOffPrefersHint(t *testing.T) {
	b := &retryAfterBackOff{BackOff: backoff.NewConstantBackOff(50 * time.Millisecond)}
	b.next = 3 * time.Second

	if got := b.NextBackOff(); got != 3*time.Second {
		t.Fatalf("expected retry-after delay, got %s", got)
	}
	if got := b.NextBackOff(); got != 50*time.Millisecond {
		t.Fatalf("expected fallback delay, got %s", got)
	}
}

func TestRetryingProviderWithoutInner(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "none", 1, 0)
	if _, err := rp.FetchTeams(context.Background()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
