package config

import "time"

const (
	envBdlBaseURL  = "BALDONTLIE_BASE_URL"
	envBdlAPIKey   = "BALDONTLIE_API_KEY"
	envBdlTimeout  = "BALDONTLIE_TIMEOUT"
	envBdlMaxPages = "BALDONTLIE_MAX_PAGES"
	envBdlRPM      = "BALDONTLIE_RPM"

	defaultBdlBaseURL  = "https://api.balldontlie.io/v1"
	defaultBdlTimeout  = 10 * time.Second
	defaultBdlMaxPages = 10
	// Free tier allows 5 requests per minute.
	defaultBdlRPM = 5
)

// BalldontlieConfig controls how we talk to the balldontlie API.
type BalldontlieConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	MaxPages          int
	RequestsPerMinute int
}

func loadBalldontlie() BalldontlieConfig {
	return BalldontlieConfig{
		BaseURL:           envOrDefault(envBdlBaseURL, defaultBdlBaseURL),
		APIKey:            envOrDefault(envBdlAPIKey, ""),
		Timeout:           durationEnvOrDefault(envBdlTimeout, defaultBdlTimeout),
		MaxPages:          intEnvOrDefault(envBdlMaxPages, defaultBdlMaxPages),
		RequestsPerMinute: intEnvOrDefault(envBdlRPM, defaultBdlRPM),
	}
}
