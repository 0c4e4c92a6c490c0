package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port             string
	Provider         string
	LogLevel         string
	LogFormat        string
	PlayerPolicy     string
	DefaultRangeDays int
	ShutdownTimeout  Duration
	Cache            CacheConfig
	Balldontlie      BalldontlieConfig
	Metrics          MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:             portEnvOrDefault(envPort, defaultPort),
		Provider:         envOrDefault(envProvider, defaultProvider),
		LogLevel:         envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:        envOrDefault(envLogFormat, defaultLogFormat),
		PlayerPolicy:     envOrDefault(envPlayerPolicy, defaultPolicy),
		DefaultRangeDays: intEnvOrDefault(envDefaultRangeDays, defaultRangeDays),
		ShutdownTimeout:  durationEnvOrDefault(envShutdownTimeout, defaultShutdownTimeout),
		Cache:            loadCache(),
		Balldontlie:      loadBalldontlie(),
		Metrics:          loadMetrics(),
	}
}

// LoadEnvFile merges a dotenv file into the process environment. Variables
// already set win. A missing file is not an error; the path comes from
// ENV_FILE and defaults to .env.
func LoadEnvFile() (string, error) {
	path := envOrDefault(envEnvFile, defaultEnvFile)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return path, fmt.Errorf("load env file %s: %w", path, err)
	}
	return path, nil
}

