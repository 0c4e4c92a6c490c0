package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName = "nba-explorer"
	otlpPushInterval   = 15 * time.Second
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// ShutdownFunc flushes and stops the meter provider.
type ShutdownFunc func(context.Context) error

// Setup wires OpenTelemetry metrics with a Prometheus reader and, when an
// endpoint is set, an OTLP HTTP push reader. The handler is nil when
// telemetry is disabled.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, ShutdownFunc, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}
	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, nil, err
	}
	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)
	inst, err := instrumentFactory(provider, cfg.ServiceName)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}

	return newRecorder(inst), promHandler, provider.Shutdown, nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(otlpPushInterval)), nil
}

type otelInstruments struct {
	ctx                context.Context
	requests           metric.Int64Counter
	requestLatencyMs   metric.Float64Histogram
	providerAttempts   metric.Int64Counter
	providerErrors     metric.Int64Counter
	providerLatencyMs  metric.Float64Histogram
	rateLimitHits      metric.Int64Counter
	retryAfterMs       metric.Float64Histogram
	explorations       metric.Int64Counter
	explorationLatency metric.Float64Histogram
	selectedGames      metric.Int64Histogram
	validationFailures metric.Int64Counter
}

// instrumentBuilder stops at the first registration error.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	if b.err != nil {
		return nil
	}
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.err = err
	return c
}

func (b *instrumentBuilder) histogram(name, desc string) metric.Float64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc))
	b.err = err
	return h
}

func (b *instrumentBuilder) intHistogram(name, desc string) metric.Int64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc))
	b.err = err
	return h
}

func newOtelInstruments(provider metric.MeterProvider, scope string) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(scope)}

	inst := &otelInstruments{
		ctx:                context.Background(),
		requests:           b.counter("http_requests_total", "HTTP requests served"),
		requestLatencyMs:   b.histogram("http_request_duration_ms", "HTTP request latency"),
		providerAttempts:   b.counter("provider_attempts_total", "Upstream provider calls"),
		providerErrors:     b.counter("provider_errors_total", "Failed upstream provider calls"),
		providerLatencyMs:  b.histogram("provider_duration_ms", "Upstream provider latency"),
		rateLimitHits:      b.counter("provider_rate_limit_hits_total", "Upstream 429 responses"),
		retryAfterMs:       b.histogram("provider_retry_after_ms", "Retry-After advertised by upstream"),
		explorations:       b.counter("explorations_total", "Filter and summary runs"),
		explorationLatency: b.histogram("exploration_duration_ms", "Filter and summary latency"),
		selectedGames:      b.intHistogram("exploration_selected_games", "Games left after filtering"),
		validationFailures: b.counter("validation_failures_total", "Raw records rejected at validation"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, route string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrRoute, route),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatencyMs.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatencyMs.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if retryAfter > 0 {
		o.retryAfterMs.Record(o.ctx, millis(retryAfter), attrs)
	}
}

func (o *otelInstruments) recordExploration(policy, outcome string, games int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrPolicy, policy),
		attribute.String(AttrOutcome, outcome),
	)
	o.explorations.Add(o.ctx, 1, attrs)
	o.explorationLatency.Record(o.ctx, millis(duration), attrs)
	if outcome == OutcomeOK {
		o.selectedGames.Record(o.ctx, int64(games), attrs)
	}
}

func (o *otelInstruments) recordValidationFailure(kind, field string) {
	if o == nil {
		return
	}
	o.validationFailures.Add(o.ctx, 1, metric.WithAttributes(
		attribute.String(AttrKind, kind),
		attribute.String(AttrField, field),
	))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
