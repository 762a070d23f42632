// Package metrics provides Prometheus metrics for the fight picks sync engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the picks service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Draft engine
	toggles            *prometheus.CounterVec
	reconcileDecisions *prometheus.CounterVec
	staleFetches       prometheus.Counter

	// Persistence round trips
	saves       *prometheus.CounterVec
	saveLatency prometheus.Histogram
	fetches     *prometheus.CounterVec

	// Upstream HTTP client
	clientRequests        *prometheus.CounterVec
	clientRequestDuration *prometheus.HistogramVec

	// Local view API
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// Open views
	openViews  prometheus.Gauge
	dirtyViews prometheus.Gauge

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fightpicks",
		subsystem:        "sync",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.toggles = auto.NewCounterVec(
		m.counterOpts("toggles_total", "Draft toggles by outcome"),
		[]string{"outcome"},
	)
	m.reconcileDecisions = auto.NewCounterVec(
		m.counterOpts("reconcile_decisions_total", "Reconciliations of fetched picks by decision"),
		[]string{"decision"},
	)
	m.staleFetches = auto.NewCounter(
		m.counterOpts("stale_fetches_dropped_total", "Fetch results discarded because a newer result was already applied"),
	)

	m.saves = auto.NewCounterVec(
		m.counterOpts("saves_total", "Save attempts by result"),
		[]string{"result"},
	)
	m.saveLatency = auto.NewHistogram(
		m.histogramOpts("save_latency_milliseconds", "Round trip of a picks save in milliseconds", m.histogramBuckets),
	)
	m.fetches = auto.NewCounterVec(
		m.counterOpts("fetches_total", "Event and picks fetches by kind and result"),
		[]string{"kind", "result"},
	)

	m.clientRequests = auto.NewCounterVec(
		m.counterOpts("client_requests_total", "Upstream HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.clientRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("client_request_duration_milliseconds", "Upstream HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "View API requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "View API request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "View API errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "View API errors by type and severity"),
		[]string{"error_type", "severity"},
	)

	m.openViews = auto.NewGauge(m.gaugeOpts("open_views", "Event views with a live controller"))
	m.dirtyViews = auto.NewGauge(m.gaugeOpts("dirty_views", "Event views holding unsaved edits"))

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordToggle counts a draft toggle by outcome.
func RecordToggle(outcome string) {
	globalManager.toggles.WithLabelValues(outcome).Inc()
}

// RecordReconcile counts a reconcile decision.
func RecordReconcile(decision string) {
	globalManager.reconcileDecisions.WithLabelValues(decision).Inc()
}

// RecordStaleFetch counts a fetch result that arrived out of order.
func RecordStaleFetch() {
	globalManager.staleFetches.Inc()
}

// RecordSave counts a save attempt by result.
func RecordSave(result string) {
	globalManager.saves.WithLabelValues(result).Inc()
}

// RecordSaveLatency records save latency in milliseconds.
func RecordSaveLatency(latencyMs float64) {
	globalManager.saveLatency.Observe(latencyMs)
}

// RecordFetch counts a fetch of kind ("event" or "picks") by result.
func RecordFetch(kind, result string) {
	globalManager.fetches.WithLabelValues(kind, result).Inc()
}

// RecordClientRequest records an upstream request and its duration.
func RecordClientRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.clientRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.clientRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPRequest records a view API request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records view API request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateOpenViews sets the number of open event views.
func UpdateOpenViews(count int) {
	globalManager.openViews.Set(float64(count))
}

// UpdateDirtyViews sets the number of views with unsaved edits.
func UpdateDirtyViews(count int) {
	globalManager.dirtyViews.Set(float64(count))
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
