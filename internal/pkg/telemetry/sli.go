package telemetry

// SLI metric names used for dashboards and alerting. These name the same
// quantities internal/pkg/metrics exposes to Prometheus; they exist
// separately so alert rules can reference a stable name independent of the
// underlying collector.
const (
	// Latency
	MetricQueryLatencyP50 = "journeys.query.latency.p50"
	MetricQueryLatencyP95 = "journeys.query.latency.p95"
	MetricQueryLatencyP99 = "journeys.query.latency.p99"

	// Throughput
	MetricQueriesPerSec = "journeys.query.requests_per_second"

	// Data freshness
	MetricTimetableAge = "journeys.timetable.data_age_seconds"

	// Availability
	MetricUptime = "journeys.service.uptime_percentage"

	// Business
	MetricJourneysBelowThreshold = "journeys.business.dropped_below_threshold"
	MetricPredictorFailureRate   = "journeys.business.predictor_failure_rate"
)
