package config

import "time"

const (
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envEnvFile          = "ENV_FILE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	envPlayerPolicy     = "PLAYER_MATCH_POLICY"
	envDefaultRangeDays = "DEFAULT_RANGE_DAYS"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envCacheEnabled     = "CACHE_ENABLED"
	envCacheTTL         = "CACHE_TTL"
	envShutdownTimeout  = "SHUTDOWN_TIMEOUT"

	defaultPort      = "4000"
	defaultProvider  = "fixture"
	defaultEnvFile   = ".env"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultPolicy    = "roster"
	// Thirty days keeps the default window inside a single paginated games query.
	defaultRangeDays   = 30
	defaultMetricsPort = "9090"
	defaultServiceName = "nba-explorer"

	defaultShutdownTimeout = 10 * time.Second
	defaultCacheTTL        = 5 * time.Minute
)
