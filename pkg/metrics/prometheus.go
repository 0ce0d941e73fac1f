// Package metrics provides Prometheus metrics for the scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scoring service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Envelope metrics - the core business signal
	envelopesComputed     prometheus.Counter
	envelopeLatency       prometheus.Histogram
	calibrationResponses  prometheus.Counter
	insufficientResponses prometheus.Counter

	// Data quality metrics
	benchmarkConfigErrors prometheus.Counter
	exercisesSkipped      prometheus.Counter
	ingestRejected        prometheus.Counter

	// Cache metrics
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	cacheEntries prometheus.Gauge

	// Operational gauges
	athletesTracked prometheus.Gauge

	// System metrics
	systemMemoryUsage   prometheus.Gauge
	systemGoroutines    prometheus.Gauge
	systemGCPauseTimeMs prometheus.Histogram

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "sprinflow",
		subsystem:        "indices",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.envelopesComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "envelopes_computed_total",
		Help:      "Total number of score envelopes computed",
	})

	m.envelopeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "envelope_latency_milliseconds",
		Help:      "Histogram of envelope computation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.calibrationResponses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "calibration_responses_total",
		Help:      "Total number of form scores answered in the calibration state",
	})

	m.insufficientResponses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "insufficient_responses_total",
		Help:      "Total number of form scores answered with insufficient data",
	})

	m.benchmarkConfigErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "benchmark_config_errors_total",
		Help:      "Total number of benchmark entries rejected at load time",
	})

	m.exercisesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exercises_skipped_total",
		Help:      "Total number of exercises excluded from the power index",
	})

	m.ingestRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_rejected_total",
		Help:      "Total number of samples rejected by the input contract",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of envelope cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of envelope cache misses",
	})

	m.cacheEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_entries",
		Help:      "Current number of envelopes held in the cache",
	})

	m.athletesTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "athletes_tracked",
		Help:      "Number of athletes with stored measurement data",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTimeMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of garbage collector pause times in milliseconds",
		Buckets:   m.histogramBuckets,
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
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordEnvelopeComputed counts one full envelope computation.
func RecordEnvelopeComputed() {
	if globalManager.enabled {
		globalManager.envelopesComputed.Inc()
	}
}

// RecordEnvelopeLatency records the latency of one envelope computation.
func RecordEnvelopeLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.envelopeLatency.Observe(latencyMs)
	}
}

// RecordCalibrationResponse counts a form score answered in the calibration state.
func RecordCalibrationResponse() {
	if globalManager.enabled {
		globalManager.calibrationResponses.Inc()
	}
}

// RecordInsufficientResponse counts a form score answered with insufficient data.
func RecordInsufficientResponse() {
	if globalManager.enabled {
		globalManager.insufficientResponses.Inc()
	}
}

// RecordBenchmarkConfigError counts a benchmark entry rejected at load time.
func RecordBenchmarkConfigError() {
	if globalManager.enabled {
		globalManager.benchmarkConfigErrors.Inc()
	}
}

// RecordExerciseSkipped counts an exercise excluded from the power index.
func RecordExerciseSkipped() {
	if globalManager.enabled {
		globalManager.exercisesSkipped.Inc()
	}
}

// RecordIngestRejected counts a sample rejected by the input contract.
func RecordIngestRejected() {
	if globalManager.enabled {
		globalManager.ingestRejected.Inc()
	}
}

// RecordCacheHit counts an envelope served from the cache.
func RecordCacheHit() {
	if globalManager.enabled {
		globalManager.cacheHits.Inc()
	}
}

// RecordCacheMiss counts an envelope that had to be recomputed.
func RecordCacheMiss() {
	if globalManager.enabled {
		globalManager.cacheMisses.Inc()
	}
}

// UpdateCacheEntries sets the current cache size.
func UpdateCacheEntries(count int) {
	if globalManager.enabled {
		globalManager.cacheEntries.Set(float64(count))
	}
}

// UpdateAthletesTracked sets the number of athletes with stored data.
func UpdateAthletesTracked(count int) {
	if globalManager.enabled {
		globalManager.athletesTracked.Set(float64(count))
	}
}

// UpdateSystemMemoryUsage sets the current allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutines.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records a garbage collector pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTimeMs.Observe(pauseMs)
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
