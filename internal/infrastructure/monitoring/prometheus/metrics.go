package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric MolForge records.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Conversion pipeline
	ConversionsTotal         CounterVec
	StructureGenerationTime  HistogramVec
	RuleVerdictsTotal        CounterVec
	ChemBackendFailuresTotal CounterVec
	ArchiveOperationsTotal   CounterVec
	EventsPublishedTotal     CounterVec

	// Cache
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec
}

// Default buckets.
var (
	DefaultHTTPDurationBuckets       = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	DefaultGenerationDurationBuckets = []float64{.05, .1, .25, .5, 1, 2, 5, 10, 20, 45}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request latency", DefaultHTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests:  collector.RegisterGauge("http_active_requests", "In-flight HTTP requests"),

		ConversionsTotal:         collector.RegisterCounter("conversions_total", "SMILES conversions by outcome", "outcome"),
		StructureGenerationTime:  collector.RegisterHistogram("structure_generation_duration_seconds", "3D structure generation latency", DefaultGenerationDurationBuckets, "driver"),
		RuleVerdictsTotal:        collector.RegisterCounter("rule_verdicts_total", "Drug-likeness verdicts", "rule", "passed"),
		ChemBackendFailuresTotal: collector.RegisterCounter("chem_backend_failures_total", "Chemistry backend failures", "driver", "code"),
		ArchiveOperationsTotal:   collector.RegisterCounter("archive_operations_total", "Structure archive operations", "operation", "result"),
		EventsPublishedTotal:     collector.RegisterCounter("events_published_total", "Conversion events published", "result"),

		CacheHitsTotal:   collector.RegisterCounter("cache_hits_total", "Structure cache hits"),
		CacheMissesTotal: collector.RegisterCounter("cache_misses_total", "Structure cache misses"),
	}
}

// NewNoopAppMetrics returns metrics that record nothing.
func NewNoopAppMetrics() *AppMetrics {
	return NewAppMetrics(NewNoopCollector())
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordConversion records the outcome of one conversion: "success",
// "invalid_input" or "error".
func RecordConversion(m *AppMetrics, outcome string) {
	m.ConversionsTotal.WithLabelValues(outcome).Inc()
}

// RecordRuleVerdict records one rule outcome.
func RecordRuleVerdict(m *AppMetrics, rule string, passed bool) {
	m.RuleVerdictsTotal.WithLabelValues(rule, strconv.FormatBool(passed)).Inc()
}

// RecordCacheAccess records a cache hit or miss.
func RecordCacheAccess(m *AppMetrics, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues().Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues().Inc()
}

// RecordArchive records an archive operation result.
func RecordArchive(m *AppMetrics, operation string, err error) {
	m.ArchiveOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

// RecordEventPublish records an event publish result.
func RecordEventPublish(m *AppMetrics, err error) {
	m.EventsPublishedTotal.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

//Personal.AI order the ending
