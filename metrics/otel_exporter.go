package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	meter          metric.Meter
	totalGauge     metric.Int64ObservableGauge
	processedGauge metric.Int64ObservableGauge
	pendingGauge   metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"webhook-vault",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.totalGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.stored.total",
		metric.WithDescription("Number of webhooks ever stored"),
		metric.WithUnit("{webhooks}"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			m, err := oe.collector.Collect(ctx)
			if err != nil {
				return nil // scrape must not fail because the store is down
			}
			o.Observe(m.Total)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("creating total gauge: %w", err)
	}

	oe.processedGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.processed.total",
		metric.WithDescription("Number of webhooks marked processed"),
		metric.WithUnit("{webhooks}"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			m, err := oe.collector.Collect(ctx)
			if err != nil {
				return nil
			}
			o.Observe(m.Processed)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("creating processed gauge: %w", err)
	}

	oe.pendingGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.pending.total",
		metric.WithDescription("Number of stored webhooks not yet processed"),
		metric.WithUnit("{webhooks}"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			m, err := oe.collector.Collect(ctx)
			if err != nil {
				return nil
			}
			o.Observe(m.Pending)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("creating pending gauge: %w", err)
	}

	return nil
}

// Handler returns the Prometheus scrape endpoint handler
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown flushes and stops the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	return oe.meterProvider.Shutdown(ctx)
}
