package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/psychat-dev/psychat/pkg/router"
)

// Outcome label values.
const (
	statusOK       = "ok"
	statusNotFound = "not_found"
	statusError    = "error"

	routeNotFound = "not_found"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "psychat").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolution duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "psychat",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the psychat Prometheus collectors.
// Create one per registry; registering twice on the same registry panics.
type Metrics struct {
	navigations  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	streams      prometheus.Gauge
	streamErrors *prometheus.CounterVec
}

// NewMetrics creates and registers the psychat collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigation paths resolved",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_duration_seconds",
			Help:        "Navigation resolution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		streams: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stream_connections",
			Help:        "Number of open navigation streams",
			ConstLabels: config.ConstLabels,
		}),

		streamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stream_errors_total",
			Help:        "Total navigation stream errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates resolver middleware backed by a new Metrics instance.
func Prometheus(opts ...MetricsOption) router.Middleware {
	return NewMetrics(opts...).Middleware()
}

// Middleware returns resolver middleware that records every resolution.
func (m *Metrics) Middleware() router.Middleware {
	return func(next router.Resolver) router.Resolver {
		return router.ResolverFunc(func(ctx context.Context, path string) (*router.MatchResult, error) {
			start := time.Now()
			result, err := next.Resolve(ctx, path)
			elapsed := time.Since(start).Seconds()

			route, status := outcome(result, err)
			m.duration.WithLabelValues(route).Observe(elapsed)
			m.navigations.WithLabelValues(route, status).Inc()

			return result, err
		})
	}
}

// StreamOpened records a navigation stream connection.
func (m *Metrics) StreamOpened() {
	if m != nil {
		m.streams.Inc()
	}
}

// StreamClosed records a navigation stream disconnection.
func (m *Metrics) StreamClosed() {
	if m != nil {
		m.streams.Dec()
	}
}

// StreamError records a navigation stream error of the given type.
func (m *Metrics) StreamError(errorType string) {
	if m != nil {
		m.streamErrors.WithLabelValues(errorType).Inc()
	}
}

// outcome returns the route and status labels for a resolution.
func outcome(result *router.MatchResult, err error) (route, status string) {
	switch {
	case err == nil && result != nil:
		return result.Route.Name, statusOK
	case errors.Is(err, router.ErrRouteNotFound):
		return routeNotFound, statusNotFound
	default:
		return routeNotFound, statusError
	}
}
