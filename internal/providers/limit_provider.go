package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nba-explorer/internal/raw"
)

const defaultRequestsPerMinute = 5

// rateLimitedProvider spaces upstream fetches with a token bucket.
type rateLimitedProvider struct {
	next    DataProvider
	limiter *rate.Limiter
	name    string
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that allows at most
// perMinute fetches per minute, with a burst of one. Calls block until a
// token is available or ctx is done.
func NewRateLimitedProvider(next DataProvider, name string, perMinute int, logger *slog.Logger) DataProvider {
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMinute
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		name:    name,
		logger:  logger,
	}
}

func (p *rateLimitedProvider) FetchTeams(ctx context.Context) ([]raw.Record, error) {
	if err := p.wait(ctx, "teams"); err != nil {
		return nil, err
	}
	return p.next.FetchTeams(ctx)
}

func (p *rateLimitedProvider) FetchPlayers(ctx context.Context, search string) ([]raw.Record, error) {
	if err := p.wait(ctx, "players"); err != nil {
		return nil, err
	}
	return p.next.FetchPlayers(ctx, search)
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, q GameQuery) ([]raw.Record, error) {
	if err := p.wait(ctx, "games"); err != nil {
		return nil, err
	}
	return p.next.FetchGames(ctx, q)
}

func (p *rateLimitedProvider) FetchAppearances(ctx context.Context, q AppearanceQuery) ([]raw.Record, error) {
	if err := p.wait(ctx, "appearances"); err != nil {
		return nil, err
	}
	return p.next.FetchAppearances(ctx, q)
}

func (p *rateLimitedProvider) wait(ctx context.Context, resource string) error {
	if p == nil || p.next == nil {
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "rate-limited fetch canceled", "resource", resource, "error", err)
		return err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "rate-limited fetch", "resource", resource)
	return nil
}
