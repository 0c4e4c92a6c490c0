package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-explorer/internal/config"
	"github.com/preston-bernstein/nba-explorer/internal/metrics"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
	"github.com/preston-bernstein/nba-explorer/internal/store"
)

// providerFactory assembles the provider with shared wrappers (cache, retry, rate limit).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

// wrap puts the upstream quota limiter inside the retry loop so retries also
// wait their turn; cache hits skip both.
func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) providers.DataProvider {
	name := normalizeProviderName(cfg.Provider, base)
	if name == providerBalldontlie {
		base = providers.NewRateLimitedProvider(base, name, cfg.Balldontlie.RequestsPerMinute, f.logger)
	}
	wrapped := providers.NewRetryingProvider(base, f.logger, f.metrics, name, 0, 0)
	if cfg.Cache.Enabled && cfg.Cache.TTL > 0 {
		wrapped = providers.NewCachingProvider(wrapped, store.NewMemoryStore(cfg.Cache.TTL), name, f.logger)
	}
	return wrapped
}
