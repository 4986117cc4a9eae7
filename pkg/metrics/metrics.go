package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Import metrics
	ImportJobsTotal    *prometheus.CounterVec
	ImportJobDuration  *prometheus.HistogramVec
	ImportRowsTotal    *prometheus.CounterVec
	ImportJobsInFlight prometheus.Gauge

	// Conflict detection metrics
	ConflictRunsTotal prometheus.Counter
	ConflictsFound    prometheus.Gauge

	// External API metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Workspace operations
	WorkspaceOperations *prometheus.CounterVec
}

// New registers collectors on the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers collectors on reg
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		ImportJobsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_jobs_total",
				Help: "Total number of import jobs",
			},
			[]string{"status", "source"},
		),

		ImportJobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "import_job_duration_seconds",
				Help:    "Import job duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"source"},
		),

		ImportRowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_rows_total",
				Help: "Total number of imported rows by classification",
			},
			[]string{"category"},
		),

		ImportJobsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "import_jobs_in_progress",
				Help: "Number of import jobs currently in progress",
			},
		),

		ConflictRunsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "conflict_detection_runs_total",
				Help: "Total number of negative keyword conflict detection runs",
			},
		),

		ConflictsFound: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "conflicts_found",
				Help: "Number of conflicts found by the last detection run",
			},
		),

		ExternalAPICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api", "status"},
		),

		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api"},
		),

		ExternalAPIFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_failures_total",
				Help: "Total number of external API failures",
			},
			[]string{"api", "error_type"},
		),

		WorkspaceOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workspace_operations_total",
				Help: "Total number of workspace mutations and queries",
			},
			[]string{"operation"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Import job metrics
func (m *Metrics) RecordImportJob(status, source string, duration time.Duration) {
	m.ImportJobsTotal.WithLabelValues(status, source).Inc()
	m.ImportJobDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// Row classification metrics
func (m *Metrics) RecordImportRows(category string, count int) {
	if count > 0 {
		m.ImportRowsTotal.WithLabelValues(category).Add(float64(count))
	}
}

func (m *Metrics) RecordConflictRun(found int) {
	m.ConflictRunsTotal.Inc()
	m.ConflictsFound.Set(float64(found))
}

// External API call metrics
func (m *Metrics) RecordExternalAPICall(api, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(api, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(api).Observe(duration.Seconds())
}

// External API failure metrics
func (m *Metrics) RecordExternalAPIFailure(api, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(api, errorType).Inc()
}

func (m *Metrics) RecordWorkspaceOperation(operation string) {
	m.WorkspaceOperations.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncImportJobsInProgress() {
	m.ImportJobsInFlight.Inc()
}

func (m *Metrics) DecImportJobsInProgress() {
	m.ImportJobsInFlight.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
