package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nba-explorer/internal/metrics"
	"github.com/preston-bernstein/nba-explorer/internal/raw"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoffInterval   = 5 * time.Second
	// Retry-After hints longer than this fail the request instead of parking it.
	defaultMaxRetryAfter = 30 * time.Second
)

// retryingProvider wraps a DataProvider with exponential backoff, honouring
// upstream Retry-After hints and recording attempt metrics.
type retryingProvider struct {
	inner         DataProvider
	logger        *slog.Logger
	metrics       *metrics.Recorder
	providerName  string
	maxAttempts   int
	maxRetryAfter time.Duration
	newBackOff    func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:         inner,
		logger:        logger,
		metrics:       recorder,
		providerName:  providerName,
		maxAttempts:   maxAttempts,
		maxRetryAfter: defaultMaxRetryAfter,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoffInterval
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

func (r *retryingProvider) FetchTeams(ctx context.Context) ([]raw.Record, error) {
	return r.do(ctx, "teams", func(ctx context.Context) ([]raw.Record, error) {
		return r.inner.FetchTeams(ctx)
	})
}

func (r *retryingProvider) FetchPlayers(ctx context.Context, search string) ([]raw.Record, error) {
	return r.do(ctx, "players", func(ctx context.Context) ([]raw.Record, error) {
		return r.inner.FetchPlayers(ctx, search)
	})
}

func (r *retryingProvider) FetchGames(ctx context.Context, q GameQuery) ([]raw.Record, error) {
	return r.do(ctx, "games", func(ctx context.Context) ([]raw.Record, error) {
		return r.inner.FetchGames(ctx, q)
	})
}

func (r *retryingProvider) FetchAppearances(ctx context.Context, q AppearanceQuery) ([]raw.Record, error) {
	return r.do(ctx, "appearances", func(ctx context.Context) ([]raw.Record, error) {
		return r.inner.FetchAppearances(ctx, q)
	})
}

func (r *retryingProvider) do(ctx context.Context, resource string, fetch func(context.Context) ([]raw.Record, error)) ([]raw.Record, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	policy := &retryAfterBackOff{BackOff: r.newBackOff()}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	op := func() ([]raw.Record, error) {
		attempt++
		start := time.Now()
		recs, err := fetch(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return recs, nil
		}

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			if rlErr.RetryAfter > r.maxRetryAfter {
				return nil, backoff.Permanent(err)
			}
			policy.next = rlErr.RetryAfter
			return nil, err
		}
		if !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"resource", resource, "attempt", attempt, "max_attempts", r.maxAttempts, "delay", delay, "error", err)
	}

	recs, err := backoff.RetryNotifyWithData(op, b, notify)
	if err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
			"resource", resource, "attempts", attempt, "error", err)
		return nil, err
	}
	return recs, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}

// retryAfterBackOff returns a pending Retry-After once before deferring to
// the wrapped policy.
type retryAfterBackOff struct {
	backoff.BackOff
	next time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	if b.next > 0 {
		d := b.next
		b.next = 0
		return d
	}
	return b.BackOff.NextBackOff()
}

func (b *retryAfterBackOff) Reset() {
	b.next = 0
	b.BackOff.Reset()
}
