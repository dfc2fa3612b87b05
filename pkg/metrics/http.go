package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics instruments the REST API. Pass nil to disable with zero
// overhead.
type HTTPMetrics interface {
	// RecordRequest records a completed request against its chi route
	// pattern, not the raw path, to bound label cardinality.
	RecordRequest(method, route string, status int, duration time.Duration)

	// RecordRequestStart and RecordRequestEnd track in-flight requests.
	RecordRequestStart()
	RecordRequestEnd()
}

type httpMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewHTTPMetrics creates Prometheus-backed HTTP metrics, or nil when
// metrics are disabled.
func NewHTTPMetrics() HTTPMetrics {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}
	return &httpMetrics{
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "paperbay_http_requests_total",
				Help: "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paperbay_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "route"},
		),
		inFlight: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "paperbay_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

func (m *httpMetrics) RecordRequest(method, route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *httpMetrics) RecordRequestStart() { m.inFlight.Inc() }
func (m *httpMetrics) RecordRequestEnd()   { m.inFlight.Dec() }
