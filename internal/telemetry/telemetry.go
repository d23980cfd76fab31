package telemetry

import (
	"context"
	"fmt"

	"wellness-analytics/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "wellness-analytics"
	serviceVersion = "1.0.0"
)

// Telemetry counts metric computations. Without an OTLP endpoint it records
// into a no-op meter.
type Telemetry struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
}

// NewTelemetry builds the meter provider and ties its shutdown to the app lifecycle.
func NewTelemetry(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*Telemetry, error) {
	if cfg.OTelEndpoint == "" {
		logger.Info("OTLP endpoint not configured, metrics disabled")
		return newTelemetry(noop.NewMeterProvider().Meter(serviceName))
	}

	ctx := context.Background()
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTelEndpoint)}
	if cfg.OTelInsecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Shutdown(ctx)
		},
	})

	logger.Info("OTLP metrics exporter started", zap.String("endpoint", cfg.OTelEndpoint))
	return newTelemetry(provider.Meter(serviceName))
}

// NewNoop returns a Telemetry that records nothing.
func NewNoop() *Telemetry {
	t, _ := newTelemetry(noop.NewMeterProvider().Meter(serviceName))
	return t
}

func newTelemetry(meter metric.Meter) (*Telemetry, error) {
	requests, err := meter.Int64Counter(
		"analytics_metric_requests_total",
		metric.WithDescription("Metric computations requested"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	failures, err := meter.Int64Counter(
		"analytics_metric_failures_total",
		metric.WithDescription("Metric computations that returned an error"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	return &Telemetry{requests: requests, failures: failures}, nil
}

func (t *Telemetry) MetricRequested(ctx context.Context, key string) {
	t.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("metric", key)))
}

func (t *Telemetry) MetricFailed(ctx context.Context, key, stage string) {
	t.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("metric", key),
		attribute.String("stage", stage),
	))
}
