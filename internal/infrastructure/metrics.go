package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/zolbooo/ebarimt/internal/config"
)

const (
	metricsNamespace = "ebarimt"
)

type (
	Metrics interface {
		RecordPosAPIRequest(ctx context.Context, endpoint string, success bool, duration time.Duration)
		RecordInitOutcome(ctx context.Context, outcome, cause string)
		RecordResync(ctx context.Context, trigger string, success bool)
		RecordBillSubmission(ctx context.Context, status string)
		RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
		Handler() http.Handler
		Shutdown(ctx context.Context) error
	}

	OTELMetrics struct {
		meterProvider *sdkmetric.MeterProvider
		meter         metric.Meter
		logger        Logger

		posAPIRequestTotal    metric.Int64Counter
		posAPIRequestDuration metric.Float64Histogram
		initOutcomeTotal      metric.Int64Counter
		resyncTotal           metric.Int64Counter
		billSubmissionTotal   metric.Int64Counter
		httpRequestTotal      metric.Int64Counter
		httpRequestDuration   metric.Float64Histogram
	}
)

func NewMetrics(ctx context.Context, cfg config.ServiceConfig, logger Logger) (Metrics, error) {
	if !cfg.Telemetry.Metrics.Enabled {
		logger.Debug().Msg("metrics disabled, using NoOp implementation")

		return &NoOpMetrics{}, nil
	}

	return NewOTELMetrics(ctx, cfg, logger)
}

func NewOTELMetrics(ctx context.Context, cfg config.ServiceConfig, logger Logger) (*OTELMetrics, error) {
	endpoint := fmt.Sprintf("%s:%s", cfg.Telemetry.OtelGRPCHost, cfg.Telemetry.OtelGRPCPort)

	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTEL collector: %w", err)
	}

	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	res, err := newResource(ctx, cfg.AppConfig)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(meterProvider)

	provider, err := newOTELMetrics(meterProvider, cfg.AppConfig.ServiceVersion, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("otel_endpoint", endpoint).
		Msg("OTEL metrics provider initialized successfully")

	return provider, nil
}

func newOTELMetrics(meterProvider *sdkmetric.MeterProvider, version string, logger Logger) (*OTELMetrics, error) {
	provider := &OTELMetrics{
		meterProvider: meterProvider,
		meter: meterProvider.Meter(
			metricsNamespace,
			metric.WithInstrumentationVersion(version),
		),
		logger: logger.Component("metrics"),
	}

	if err := provider.initializeMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return provider, nil
}

func newResource(ctx context.Context, app config.AppConfig) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(app.ServiceName),
			semconv.ServiceVersionKey.String(app.ServiceVersion),
			semconv.ServiceInstanceIDKey.String(app.CommitSHA),
			semconv.DeploymentEnvironmentKey.String(app.Env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return res, nil
}

func (om *OTELMetrics) initializeMetrics() error {
	var err error

	om.posAPIRequestTotal, err = om.meter.Int64Counter(
		"posapi_requests_total",
		metric.WithDescription("Total number of PosAPI requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create posapi_requests_total counter: %w", err)
	}

	om.posAPIRequestDuration, err = om.meter.Float64Histogram(
		"posapi_request_duration_seconds",
		metric.WithDescription("PosAPI request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create posapi_request_duration_seconds histogram: %w", err)
	}

	om.initOutcomeTotal, err = om.meter.Int64Counter(
		"init_outcomes_total",
		metric.WithDescription("Total number of initialization protocol runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create init_outcomes_total counter: %w", err)
	}

	om.resyncTotal, err = om.meter.Int64Counter(
		"resyncs_total",
		metric.WithDescription("Total number of sendData resynchronizations by trigger"),
		metric.WithUnit("{resync}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create resyncs_total counter: %w", err)
	}

	om.billSubmissionTotal, err = om.meter.Int64Counter(
		"bills_submitted_total",
		metric.WithDescription("Total number of bill submissions by status"),
		metric.WithUnit("{bill}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create bills_submitted_total counter: %w", err)
	}

	om.httpRequestTotal, err = om.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests served by the sidecar"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	om.httpRequestDuration, err = om.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	return nil
}

func (om *OTELMetrics) RecordPosAPIRequest(ctx context.Context, endpoint string, success bool, duration time.Duration) {
	om.posAPIRequestTotal.Add(ctx, 1,
		metric.WithAttributes(
			EndpointAttr(endpoint),
			StatusAttr(statusLabel(success)),
		),
	)

	om.posAPIRequestDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			EndpointAttr(endpoint),
		),
	)
}

func (om *OTELMetrics) RecordInitOutcome(ctx context.Context, outcome, cause string) {
	om.initOutcomeTotal.Add(ctx, 1,
		metric.WithAttributes(
			OutcomeAttr(outcome),
			CauseAttr(cause),
		),
	)
}

func (om *OTELMetrics) RecordResync(ctx context.Context, trigger string, success bool) {
	om.resyncTotal.Add(ctx, 1,
		metric.WithAttributes(
			TriggerAttr(trigger),
			StatusAttr(statusLabel(success)),
		),
	)
}

func (om *OTELMetrics) RecordBillSubmission(ctx context.Context, status string) {
	om.billSubmissionTotal.Add(ctx, 1,
		metric.WithAttributes(
			StatusAttr(status),
		),
	)
}

func (om *OTELMetrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		MethodAttr(method),
		RouteAttr(route),
		StatusCodeAttr(statusCode),
	)

	om.httpRequestTotal.Add(ctx, 1, attrs)
	om.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

func (om *OTELMetrics) Handler() http.Handler {
	return promhttp.Handler()
}

func (om *OTELMetrics) Shutdown(ctx context.Context) error {
	if err := om.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}

	return nil
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}

	return "error"
}
