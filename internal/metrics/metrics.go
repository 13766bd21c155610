package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters for the update loop and its collaborators.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry          *prometheus.Registry
	cyclesTotal       *prometheus.CounterVec
	cycleDuration     prometheus.Histogram
	uploadsTotal      *prometheus.CounterVec
	uploadReuseTotal  *prometheus.CounterVec
	submissionsTotal  *prometheus.CounterVec
	reconnectsTotal   *prometheus.CounterVec
	clientRestarts    prometheus.Counter
	uniqueUploadGauge prometheus.Gauge
}

// New creates and registers the metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		cyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mpcpresence_cycles_total",
			Help: "Poll cycles by outcome (playing, paused, stopped, unavailable, timeout)",
		}, []string{"outcome"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mpcpresence_cycle_duration_seconds",
			Help:    "Wall time of completed poll cycles",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		uploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mpcpresence_uploads_total",
			Help: "Image upload attempts by result (success or failure kind)",
		}, []string{"result"}),
		uploadReuseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mpcpresence_upload_reuse_total",
			Help: "Uploads skipped in favour of the cached URL, by reason",
		}, []string{"reason"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mpcpresence_presence_submissions_total",
			Help: "Presence submissions by result",
		}, []string{"result"}),
		reconnectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mpcpresence_presence_reconnects_total",
			Help: "Presence reconnects by cause",
		}, []string{"cause"}),
		clientRestarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mpcpresence_client_restarts_total",
			Help: "Downstream client restarts triggered by the upload threshold",
		}),
		uniqueUploadGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mpcpresence_unique_uploads",
			Help: "Unique uploads since the last downstream restart",
		}),
	}

	registry.MustRegister(
		m.cyclesTotal,
		m.cycleDuration,
		m.uploadsTotal,
		m.uploadReuseTotal,
		m.submissionsTotal,
		m.reconnectsTotal,
		m.clientRestarts,
		m.uniqueUploadGauge,
	)

	return m
}

// ObserveCycle records a finished cycle.
func (m *Metrics) ObserveCycle(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.cyclesTotal.WithLabelValues(outcome).Inc()
	if outcome != "timeout" {
		m.cycleDuration.Observe(d.Seconds())
	}
}

// IncUpload records an upload attempt result.
func (m *Metrics) IncUpload(result string) {
	if m == nil {
		return
	}
	m.uploadsTotal.WithLabelValues(result).Inc()
}

// IncUploadReuse records an upload avoided by the cache.
func (m *Metrics) IncUploadReuse(reason string) {
	if m == nil {
		return
	}
	m.uploadReuseTotal.WithLabelValues(reason).Inc()
}

// SetUniqueUploads sets the unique upload gauge.
func (m *Metrics) SetUniqueUploads(n int) {
	if m == nil {
		return
	}
	m.uniqueUploadGauge.Set(float64(n))
}

// IncSubmission records a presence submission result.
func (m *Metrics) IncSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

// IncReconnect records a presence reconnect.
func (m *Metrics) IncReconnect(cause string) {
	if m == nil {
		return
	}
	m.reconnectsTotal.WithLabelValues(cause).Inc()
}

// IncClientRestart records a downstream restart.
func (m *Metrics) IncClientRestart() {
	if m == nil {
		return
	}
	m.clientRestarts.Inc()
}

// Handler returns an http.Handler that serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
