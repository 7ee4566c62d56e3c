// Package telemetry sets up OpenTelemetry tracing for focusnav.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// EndpointEnv is consulted when Config.Endpoint is empty.
	EndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"
	// DefaultServiceName is used when Config.ServiceName is empty.
	DefaultServiceName = "focusnav"
)

// Config selects where spans go.
type Config struct {
	Endpoint    string
	ServiceName string
	Insecure    bool
}

// Provider owns the tracer provider. A zero-endpoint Provider is disabled and
// hands out noop tracers.
type Provider struct {
	sdk     *sdktrace.TracerProvider
	enabled bool
}

// New builds an OTLP/HTTP exporter when an endpoint is configured, and
// installs it as the global tracer provider.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv(EndpointEnv)
	}
	if endpoint == "" {
		return &Provider{}, nil
	}

	opts, err := endpointOptions(endpoint, cfg.Insecure)
	if err != nil {
		return nil, err
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return &Provider{sdk: provider, enabled: true}, nil
}

// tracesPath is appended to a base endpoint URL, as OTel SDKs do for
// OTEL_EXPORTER_OTLP_ENDPOINT.
const tracesPath = "/v1/traces"

// endpointOptions accepts both forms an endpoint is written in: a base URL
// such as http://collector:4318, or a bare host:port that is plain HTTP only
// when insecure is set.
func endpointOptions(endpoint string, insecure bool) ([]otlptracehttp.Option, error) {
	if !strings.Contains(endpoint, "://") {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return opts, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("otlp endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("otlp endpoint %q: missing host", endpoint)
	}
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(u.Host),
		otlptracehttp.WithURLPath(strings.TrimSuffix(u.Path, "/") + tracesPath),
	}
	if u.Scheme == "http" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts, nil
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Tracer returns a named tracer, or a noop tracer when disabled.
func (p *Provider) Tracer(name string) oteltrace.Tracer {
	if !p.Enabled() {
		return noop.NewTracerProvider().Tracer(name)
	}
	return p.sdk.Tracer(name)
}

// Shutdown flushes and closes the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
