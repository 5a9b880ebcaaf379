package middleware

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/psychat-dev/psychat/pkg/router"
)

const (
	defaultTracerName = "psychat"
	resolveSpanName   = "psychat.resolve"
)

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "psychat").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	// AttributeExtractor adds custom attributes for a path.
	AttributeExtractor func(ctx context.Context, path string) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx context.Context, path string) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every resolution.
//
// Each span carries psychat.path and, on success, psychat.route,
// psychat.view and psychat.param_count. Unresolved paths mark the span as
// an error.
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return func(next router.Resolver) router.Resolver {
		return router.ResolverFunc(func(ctx context.Context, path string) (*router.MatchResult, error) {
			attrs := []attribute.KeyValue{
				attribute.String("psychat.path", path),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(ctx, path)...)
			}

			ctx, span := tracer.Start(ctx, resolveSpanName,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			result, err := next.Resolve(ctx, path)
			if err != nil {
				span.RecordError(err)
				if errors.Is(err, router.ErrRouteNotFound) {
					span.SetStatus(codes.Error, router.ErrRouteNotFound.Error())
				} else {
					span.SetStatus(codes.Error, err.Error())
				}
				return result, err
			}

			span.SetAttributes(
				attribute.String("psychat.route", result.Route.Name),
				attribute.String("psychat.view", string(result.View)),
				attribute.Int("psychat.param_count", len(result.Params)),
			)
			span.SetStatus(codes.Ok, "")
			return result, nil
		})
	}
}
