package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/nba-explorer/internal/logging"
)

// logWithProvider prefers the request-scoped logger and always tags the provider.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
