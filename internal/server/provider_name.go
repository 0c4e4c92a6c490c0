package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-explorer/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving one from the
// instance when none is configured. Metrics and logs use it as the provider label.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return providerFixture
}
