package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/querykit/logger"
)

const meterName = "github.com/kbukum/querykit"

// InitMeter initializes the OpenTelemetry meter provider with an OTLP HTTP exporter.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.MetricsEndpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.MetricsEndpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by the query engine and the CLI.
type Metrics struct {
	materializations  metric.Int64Counter
	materializedItems metric.Int64Histogram
	errorTotal        metric.Int64Counter
	commandTotal      metric.Int64Counter
	commandDuration   metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	materializations, err := meter.Int64Counter("query.materializations",
		metric.WithDescription("Number of times a query drained its source into a buffer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.materializations counter: %w", err)
	}

	materializedItems, err := meter.Int64Histogram("query.materialized.items",
		metric.WithDescription("Items held by a materialized buffer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.materialized.items histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("query.errors",
		metric.WithDescription("Query failures by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query.errors counter: %w", err)
	}

	commandTotal, err := meter.Int64Counter("command.total",
		metric.WithDescription("Total number of CLI commands run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating command.total counter: %w", err)
	}

	commandDuration, err := meter.Float64Histogram("command.duration",
		metric.WithDescription("Duration of CLI commands in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating command.duration histogram: %w", err)
	}

	return &Metrics{
		materializations:  materializations,
		materializedItems: materializedItems,
		errorTotal:        errorTotal,
		commandTotal:      commandTotal,
		commandDuration:   commandDuration,
	}, nil
}

var (
	defaultMetrics    *Metrics
	defaultMetricsErr error
	defaultOnce       sync.Once
)

// Default returns the Metrics bound to the global meter provider. Instruments
// created before a provider is installed forward to it once it is.
func Default() (*Metrics, error) {
	defaultOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = NewMetrics(Meter(meterName))
	})
	return defaultMetrics, defaultMetricsErr
}

// RecordMaterialization records one buffer fill of the given kind and size.
func (m *Metrics) RecordMaterialization(ctx context.Context, kind string, items int) {
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	m.materializations.Add(ctx, 1, attrs)
	m.materializedItems.Record(ctx, int64(items), attrs)
}

// RecordError records a failure by error code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}

// RecordCommand records a CLI command execution.
func (m *Metrics) RecordCommand(ctx context.Context, command, status string, duration time.Duration) {
	m.commandTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("status", status),
	))
	m.commandDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("command", command),
	))
}
