// Package otel configures OpenTelemetry tracing for engine processes.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	envEnabled  = "CALCDEX_OTEL_ENABLED"
	envEndpoint = "CALCDEX_OTEL_ENDPOINT"
)

// Enabled reports whether tracing is configured for this process.
// Tracing is opt-in: it requires a non-empty CALCDEX_OTEL_ENDPOINT and
// CALCDEX_OTEL_ENABLED not set to "false".
func Enabled() bool {
	if strings.EqualFold(os.Getenv(envEnabled), "false") {
		return false
	}
	return os.Getenv(envEndpoint) != ""
}

// Setup initialises OpenTelemetry tracing for the given service.
//
// When tracing is not enabled, Setup returns a no-op shutdown function and
// no global provider is registered. The returned shutdown function flushes
// pending spans and should be deferred by the caller.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if !Enabled() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(os.Getenv(envEndpoint)),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
