// Package middleware provides resolver middleware for psychat transports.
//
// This package includes:
//   - Prometheus metrics for navigation resolution
//   - OpenTelemetry tracing for navigation resolution
//   - Structured debug logging of every resolution
//
// Middleware wraps a router.Resolver and is composed with router.Chain:
//
//	metrics := middleware.NewMetrics(middleware.WithNamespace("psychat"))
//	resolver := router.Chain(table.Resolver(),
//	    middleware.OpenTelemetry(middleware.WithTracerName("psychat")),
//	    metrics.Middleware(),
//	    middleware.Logging(logger),
//	)
//
// # Prometheus Metrics
//
//   - psychat_navigations_total{route,status}: resolutions by route name and outcome
//   - psychat_resolve_duration_seconds{route}: resolution latency
//   - psychat_stream_connections: open navigation streams
//   - psychat_stream_errors_total{type}: navigation stream errors
//
// The route label is the route name, or "not_found", never the raw path,
// which keeps label cardinality bounded by the size of the route table.
//
// # OpenTelemetry
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure the provider in main() before starting the server.
package middleware
