package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Auth Metrics
	AuthRejectionsTotal *prometheus.CounterVec

	// Business Metrics
	NotificationsTotal  *prometheus.CounterVec
	CreditsAppliedTotal *prometheus.CounterVec

	// Store Metrics
	StoreRequestsTotal   *prometheus.CounterVec
	StoreRequestDuration *prometheus.HistogramVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payhook_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payhook_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "payhook_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		AuthRejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payhook_auth_rejections_total",
				Help: "Total number of requests rejected before dispatch",
			},
			[]string{"reason"},
		),

		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payhook_notifications_total",
				Help: "Total number of processed webhook notifications",
			},
			[]string{"type", "outcome"},
		),
		CreditsAppliedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payhook_credits_applied_total",
				Help: "Total amount of virtual currency credited or debited",
			},
			[]string{"direction"},
		),

		StoreRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payhook_store_requests_total",
				Help: "Total number of document store requests",
			},
			[]string{"operation", "collection", "status"},
		),
		StoreRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payhook_store_request_duration_seconds",
				Help:    "Duration of document store requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "collection"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordAuthRejection(reason string) {
	m.AuthRejectionsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordNotification(notificationType, outcome string) {
	m.NotificationsTotal.WithLabelValues(notificationType, outcome).Inc()
}

func (m *Metrics) RecordCreditsApplied(direction string, quantity int64) {
	m.CreditsAppliedTotal.WithLabelValues(direction).Add(float64(quantity))
}

func (m *Metrics) RecordStoreRequest(operation, collection, status string, duration time.Duration) {
	m.StoreRequestsTotal.WithLabelValues(operation, collection, status).Inc()
	m.StoreRequestDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
}
