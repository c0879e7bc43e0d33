package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Settings describe the process and the Azure target its spans belong to.
type Settings struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string

	SubscriptionID string
	ResourceGroup  string
	Location       string
	Publisher      string
}

// Attributes returns the resource attributes attached to every span.
func (s Settings) Attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(s.ServiceName),
		semconv.CloudProviderAzure,
	}
	if s.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(s.ServiceVersion))
	}
	if s.SubscriptionID != "" {
		attrs = append(attrs, semconv.CloudAccountID(s.SubscriptionID))
	}
	if s.Location != "" {
		attrs = append(attrs, semconv.CloudRegion(s.Location))
	}
	if s.ResourceGroup != "" {
		attrs = append(attrs, attribute.String("apphost.resource_group", s.ResourceGroup))
	}
	if s.Publisher != "" {
		attrs = append(attrs, attribute.String("apphost.publisher", s.Publisher))
	}
	return attrs
}

// Setup registers a global tracer provider exporting over OTLP HTTP. An empty
// endpoint leaves the no-op provider in place.
//
// The returned shutdown function flushes pending spans.
func Setup(ctx context.Context, s Settings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	endpoint := strings.TrimSpace(s.Endpoint)
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := sdkresource.New(ctx,
		sdkresource.WithAttributes(s.Attributes()...),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
