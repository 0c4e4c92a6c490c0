package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled bool
	// Port serves the Prometheus scrape endpoint when Enabled.
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// CacheConfig controls the in-memory cache of upstream responses.
type CacheConfig struct {
	Enabled bool
	TTL     Duration
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         portEnvOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}

func loadCache() CacheConfig {
	return CacheConfig{
		Enabled: boolEnvOrDefault(envCacheEnabled, true),
		TTL:     durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}
