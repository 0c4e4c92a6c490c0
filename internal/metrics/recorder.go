package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type validationKey struct {
	kind  string
	field string
}

// Recorder keeps in-memory counters for provider calls, explorations and
// validation failures, and mirrors them to OpenTelemetry when configured.
type Recorder struct {
	mu           sync.Mutex
	providers    map[string]*providerStats
	explorations map[string]int
	validation   map[validationKey]int
	otel         *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers:    make(map[string]*providerStats),
		explorations: make(map[string]int),
		validation:   make(map[validationKey]int),
		otel:         otel,
	}
}

// RecordProviderAttempt counts one upstream call and keeps its latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.providerLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	r.otel.recordProviderAttempt(provider, duration, err)
}

// RecordRateLimit counts a 429 from the provider and keeps the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.providerLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	r.otel.recordRateLimit(provider, retryAfter)
}

// RecordExploration tracks one filter-and-summarise run.
func (r *Recorder) RecordExploration(policy, outcome string, games int, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.explorations[outcome]++
	r.mu.Unlock()

	r.otel.recordExploration(policy, outcome, games, duration)
}

// RecordValidationFailure counts a rejected raw record by kind and field.
func (r *Recorder) RecordValidationFailure(kind, field string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.validation[validationKey{kind: kind, field: field}]++
	r.mu.Unlock()

	r.otel.recordValidationFailure(kind, field)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, route, status, duration)
}

// Snapshot is a copy of the counters kept for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.providers[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// Explorations returns how many runs ended with the given outcome.
func (r *Recorder) Explorations(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.explorations[outcome]
}

// ValidationFailures returns how many records of kind were rejected on field.
func (r *Recorder) ValidationFailures(kind, field string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validation[validationKey{kind: kind, field: field}]
}

func (r *Recorder) providerLocked(provider string) *providerStats {
	stats, ok := r.providers[provider]
	if !ok {
		stats = &providerStats{}
		r.providers[provider] = stats
	}
	return stats
}
