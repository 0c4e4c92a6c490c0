package balldontlie

import "time"

const (
	providerName = "balldontlie"

	defaultBaseURL     = "https://api.balldontlie.io/v1"
	defaultPerPage     = 100
	playerSearchLimit  = 50
	defaultHTTPTimeout = 10 * time.Second
	defaultMaxPages    = 10
	errorBodyLimit     = 512
)
