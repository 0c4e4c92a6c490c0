package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// envValue returns the trimmed value of key and whether it was set to anything.
func envValue(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

// parsedEnvOrDefault applies parse to a set variable and keeps defaultValue when
// the variable is unset or parse rejects it.
func parsedEnvOrDefault[T any](key string, defaultValue T, parse func(string) (T, bool)) T {
	raw, ok := envValue(key)
	if !ok {
		return defaultValue
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return defaultValue
}

func envOrDefault(key, defaultValue string) string {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (string, bool) { return raw, true })
}

// portEnvOrDefault accepts "8080" or ":8080".
func portEnvOrDefault(key, defaultValue string) string {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (string, bool) {
		port := strings.TrimPrefix(raw, ":")
		n, err := strconv.Atoi(port)
		return port, err == nil && n >= 0 && n <= 65535
	})
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (time.Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

func intEnvOrDefault(key string, defaultValue int) int {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off":
			return false, true
		}
		return false, false
	})
}
