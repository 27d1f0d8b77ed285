package observability

import (
	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for feed calls, transforms and
// forecast delivery.
type Metrics struct {
	// Feed metrics.
	FeedRequests *prometheus.CounterVec   // labels: endpoint={location,forecast}, outcome={success,error}
	FeedDuration *prometheus.HistogramVec // labels: endpoint

	// Transform metrics.
	ElementsTransformed *prometheus.CounterVec // labels: shape
	ElementsSkipped     *prometheus.CounterVec // labels: shape, reason

	// Delivery metrics.
	Forecasts          *prometheus.CounterVec // labels: format, outcome
	ForecastsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
	PublishEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewUnregisteredMetrics()
	prometheus.MustRegister(
		m.FeedRequests,
		m.FeedDuration,
		m.ElementsTransformed,
		m.ElementsSkipped,
		m.Forecasts,
		m.ForecastsPublished,
		m.PublishErrors,
		m.PublishEnabled,
	)
	return m
}

// NewUnregisteredMetrics creates the collectors without registering them.
// Tests and the one-shot command use it so repeated construction cannot
// collide in the default registry.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndfd",
			Name:      "feed_requests_total",
			Help:      "NDFD feed requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		FeedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ndfd",
			Name:      "feed_request_duration_seconds",
			Help:      "NDFD feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
		ElementsTransformed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndfd",
			Name:      "elements_transformed_total",
			Help:      "Forecast elements written to normalized output, by shape.",
		}, []string{"shape"}),
		ElementsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndfd",
			Name:      "elements_skipped_total",
			Help:      "Forecast elements or conditions that produced no output, by shape and reason.",
		}, []string{"shape", "reason"}),
		Forecasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndfd",
			Name:      "forecasts_total",
			Help:      "Forecast requests by output format and outcome.",
		}, []string{"format", "outcome"}),
		ForecastsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ndfd",
			Name:      "forecasts_published_total",
			Help:      "Serialized forecasts written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ndfd",
			Name:      "publish_errors_total",
			Help:      "Failed writes to the sink topic.",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ndfd",
			Name:      "publish_enabled",
			Help:      "1 when forecasts are published to Kafka, 0 otherwise.",
		}),
	}
}

// ElementTransformed implements domain.TransformObserver.
func (m *Metrics) ElementTransformed(shape domain.Shape) {
	m.ElementsTransformed.WithLabelValues(string(shape)).Inc()
}

// ElementSkipped implements domain.TransformObserver.
func (m *Metrics) ElementSkipped(shape domain.Shape, reason string) {
	m.ElementsSkipped.WithLabelValues(string(shape), reason).Inc()
}
