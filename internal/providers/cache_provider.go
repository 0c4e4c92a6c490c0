package providers

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/preston-bernstein/nba-explorer/internal/raw"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// Cache holds fetched batches by request key.
type Cache interface {
	Get(key string) ([]raw.Record, bool)
	Set(key string, records []raw.Record)
}

type cachingProvider struct {
	next   DataProvider
	cache  Cache
	name   string
	logger *slog.Logger
}

// NewCachingProvider serves repeated identical fetches from cache. Errors are never cached.
func NewCachingProvider(next DataProvider, cache Cache, name string, logger *slog.Logger) DataProvider {
	return &cachingProvider{next: next, cache: cache, name: name, logger: logger}
}

func (p *cachingProvider) FetchTeams(ctx context.Context) ([]raw.Record, error) {
	return p.cached(ctx, "teams", func(ctx context.Context) ([]raw.Record, error) {
		return p.next.FetchTeams(ctx)
	})
}

func (p *cachingProvider) FetchPlayers(ctx context.Context, search string) ([]raw.Record, error) {
	key := "players|" + strings.ToLower(strings.TrimSpace(search))
	return p.cached(ctx, key, func(ctx context.Context) ([]raw.Record, error) {
		return p.next.FetchPlayers(ctx, search)
	})
}

func (p *cachingProvider) FetchGames(ctx context.Context, q GameQuery) ([]raw.Record, error) {
	key := cacheKey("games", q.Start, q.End, q.TeamIDs)
	return p.cached(ctx, key, func(ctx context.Context) ([]raw.Record, error) {
		return p.next.FetchGames(ctx, q)
	})
}

func (p *cachingProvider) FetchAppearances(ctx context.Context, q AppearanceQuery) ([]raw.Record, error) {
	key := cacheKey("appearances", q.Start, q.End, q.PlayerIDs, q.GameIDs)
	return p.cached(ctx, key, func(ctx context.Context) ([]raw.Record, error) {
		return p.next.FetchAppearances(ctx, q)
	})
}

func (p *cachingProvider) cached(ctx context.Context, key string, fetch func(context.Context) ([]raw.Record, error)) ([]raw.Record, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	if p.cache == nil {
		return fetch(ctx)
	}
	if records, ok := p.cache.Get(key); ok {
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "cache hit", "key", key)
		return records, nil
	}
	records, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, records)
	return records, nil
}

func cacheKey(resource string, start, end timeutil.Date, idLists ...[]string) string {
	parts := []string{resource, start.String(), end.String()}
	for _, ids := range idLists {
		sorted := append([]string(nil), ids...)
		sort.Strings(sorted)
		parts = append(parts, strings.Join(sorted, ","))
	}
	return strings.Join(parts, "|")
}
