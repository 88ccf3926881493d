package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "selup").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	registry           prometheus.Registerer
	eventsTotal        *prometheus.CounterVec
	eventErrors        *prometheus.CounterVec
	patchesSent        prometheus.Counter
	revealTransitions  prometheus.Counter
	validationFailures prometheus.Counter
	activeSessions     prometheus.Gauge
}

// NewMetrics registers and returns the server metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "selup",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		registry: config.Registry,
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "events_total",
			Help:      "Total number of client events processed",
		}, []string{"type"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "event_errors_total",
			Help:      "Total number of event processing errors",
		}, []string{"reason"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "patches_sent_total",
			Help:      "Total number of DOM patches sent to clients",
		}),

		revealTransitions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "reveal_transitions_total",
			Help:      "Total number of elements revealed",
		}),

		validationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of blocked form submissions",
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "active_sessions",
			Help:      "Number of connected sessions",
		}),
	}
}

// Registerer returns the registry the collectors live on, so HTTP
// middleware can share it.
func (m *Metrics) Registerer() prometheus.Registerer { return m.registry }
