// Package metrics provides Prometheus metrics for the offer pipeline.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector the service exports.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	// Pipeline
	pipelineRuns         prometheus.Counter
	recordsScored        prometheus.Counter
	scoringErrors        *prometheus.CounterVec
	offersRendered       *prometheus.CounterVec
	renderErrors         prometheus.Counter
	descriptionFallbacks prometheus.Counter
	engagementScore      prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByComponent   *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

// DefaultNamespace prefixes every metric unless Init overrides it.
const DefaultNamespace = "engageoffer"

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before any Record* helper runs.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: DefaultNamespace,
		subsystem: "pipeline",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.pipelineRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of pipeline runs over the patient dataset",
	})

	m.recordsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_scored_total",
		Help:      "Total number of patient records scored successfully",
	})

	m.scoringErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "scoring_errors_total",
			Help:      "Total number of records rejected by the engagement scorer",
		},
		[]string{"risk"},
	)

	m.offersRendered = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "offers_rendered_total",
			Help:      "Total number of offer letters rendered by discount percentage",
		},
		[]string{"discount"},
	)

	m.renderErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_errors_total",
		Help:      "Total number of offer letters that failed to render",
	})

	m.descriptionFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "description_fallbacks_total",
		Help:      "Total number of letters rendered with the generic fallback description",
	})

	m.engagementScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "engagement_score",
		Help:      "Distribution of computed engagement scores",
		Buckets:   []float64{0, 15, 30, 50, 70, 90, 100},
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)
}

// RecordPipelineRun increments the pipeline runs counter.
func RecordPipelineRun() {
	globalManager.pipelineRuns.Inc()
}

// RecordScored counts a scored record and observes its score.
func RecordScored(score float64) {
	globalManager.recordsScored.Inc()
	globalManager.engagementScore.Observe(score)
}

// RecordScoringError counts a record the scorer rejected.
func RecordScoringError(risk string) {
	globalManager.scoringErrors.WithLabelValues(risk).Inc()
}

// RecordOfferRendered counts a rendered letter by its discount percentage.
func RecordOfferRendered(discount int) {
	globalManager.offersRendered.WithLabelValues(strconv.Itoa(discount)).Inc()
}

// RecordRenderError counts a letter that failed to render.
func RecordRenderError() {
	globalManager.renderErrors.Inc()
}

// RecordDescriptionFallback counts a letter that used the generic description.
func RecordDescriptionFallback() {
	globalManager.descriptionFallbacks.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Collectors exposes the global collectors to tests in other packages.
type Collectors struct {
	PipelineRuns         prometheus.Counter
	RecordsScored        prometheus.Counter
	ScoringErrors        *prometheus.CounterVec
	OffersRendered       *prometheus.CounterVec
	DescriptionFallbacks prometheus.Counter
	HTTPRequests         *prometheus.CounterVec
}

// Global returns the collectors of the global manager.
func Global() Collectors {
	return Collectors{
		PipelineRuns:         globalManager.pipelineRuns,
		RecordsScored:        globalManager.recordsScored,
		ScoringErrors:        globalManager.scoringErrors,
		OffersRendered:       globalManager.offersRendered,
		DescriptionFallbacks: globalManager.descriptionFallbacks,
		HTTPRequests:         globalManager.httpRequests,
	}
}
