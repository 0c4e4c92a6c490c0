package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nba-explorer/internal/config"
	"github.com/preston-bernstein/nba-explorer/internal/logging"
	"github.com/preston-bernstein/nba-explorer/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envFile, envErr := config.LoadEnvFile()
	cfg := config.Load()
	logger := newLogger(cfg, os.Stdout)
	logStartup(logger, cfg, envFile, envErr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.New(cfg, logger).Run(ctx, stop)
}

func newLogger(cfg config.Config, out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
		Output:  out,
	})
}

func logStartup(logger *slog.Logger, cfg config.Config, envFile string, envErr error) {
	switch {
	case envErr != nil:
		logging.Warn(logger, "env file ignored", "error", envErr)
	case envFile != "":
		logging.Info(logger, "loaded env file", "path", envFile)
	}
	logging.Info(logger, "configuration loaded",
		logging.FieldProvider, cfg.Provider,
		logging.FieldPolicy, cfg.PlayerPolicy,
		"port", cfg.Port,
		"metrics_enabled", cfg.Metrics.Enabled,
		"cache_enabled", cfg.Cache.Enabled,
	)
}
