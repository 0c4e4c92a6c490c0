package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-explorer/internal/config"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
	"github.com/preston-bernstein/nba-explorer/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-explorer/internal/providers/fixture"
)

const (
	providerFixture     = "fixture"
	providerBalldontlie = "balldontlie"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch normalizeProviderName(cfg.Provider, nil) {
	case providerFixture:
		return fixture.New()
	case providerBalldontlie:
		if cfg.Balldontlie.APIKey == "" && logger != nil {
			logger.Warn("balldontlie api key not set, requests will likely be rejected")
		}
		return balldontlie.NewClient(balldontlie.Config{
			BaseURL:  cfg.Balldontlie.BaseURL,
			APIKey:   cfg.Balldontlie.APIKey,
			Timeout:  cfg.Balldontlie.Timeout,
			MaxPages: cfg.Balldontlie.MaxPages,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
