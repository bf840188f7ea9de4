// Package tracing wires the harness into OpenTelemetry. Each executed test
// becomes a span, so a run can be correlated with the systems under test.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active.
	// When false, a no-op tracer is returned.
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the export backend.
	// Options: "none", "stdout", "otlp"
	Exporter string `mapstructure:"exporter"`

	// OTLPEndpoint is the OTLP collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls the fraction of traces to sample.
	// 1.0 = all traces, 0.1 = 10% of traces
	SampleRate float64 `mapstructure:"sample_rate"`

	// ServiceName identifies this process in traces.
	ServiceName string `mapstructure:"service_name"`
}

// DefaultConfig returns sensible defaults for development.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Exporter:     "none",
		OTLPEndpoint: "localhost:4317",
		SampleRate:   1.0,
		ServiceName:  "xm",
	}
}

// Provider manages the OpenTelemetry tracer provider. It wraps the
// underlying TracerProvider and provides convenient methods for getting
// tracers and shutting down cleanly.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// NewProvider creates and configures the trace provider. If tracing is
// disabled in the config, a no-op provider with zero overhead is returned.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		noopProvider := noop.NewTracerProvider()
		return &Provider{
			provider: nil,
			tracer:   noopProvider.Tracer("noop"),
			enabled:  false,
		}, nil
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.Exporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
	case "otlp":
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exporter, err = otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
	case "none", "":
		// No exporter, but tracing enabled for internal correlation
		exporter = nil
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "xm"
	}

	// resource.NewSchemaless avoids schema version conflicts with resource.Default()
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}
	sampler := sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(sampleRate),
	)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
		enabled:  true,
	}, nil
}

// Tracer returns the configured tracer for creating spans. It is safe to
// use even when tracing is disabled (a no-op tracer in that case).
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled returns whether tracing is enabled.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans and shuts down the provider. Call it
// before exit so all spans are exported.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
