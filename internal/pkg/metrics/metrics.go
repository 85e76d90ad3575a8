package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journeyd",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "journeyd",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Query orchestrator metrics (C7)
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journeyd",
		Subsystem: "query",
		Name:      "total",
		Help:      "Total journey queries processed",
	}, []string{"outcome"}) // outcome: ok, unknown_stop, invalid_time, no_journey

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "journeyd",
		Subsystem: "query",
		Name:      "duration_seconds",
		Help:      "End-to-end duration of a FindJourneys call",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	JourneysReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "journeyd",
		Subsystem: "query",
		Name:      "journeys_returned",
		Help:      "Number of journeys returned per query, after threshold filtering",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
	})

	JourneysDroppedByThreshold = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "journeyd",
		Subsystem: "query",
		Name:      "journeys_dropped_by_threshold_total",
		Help:      "Journeys discarded for falling below the confidence threshold",
	})

	// Reverse Connection Scan metrics (C3)
	ScanConnectionsVisited = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "journeyd",
		Subsystem: "scan",
		Name:      "connections_visited",
		Help:      "Connections examined per backward scan before early termination",
		Buckets:   prometheus.ExponentialBuckets(10, 2, 12),
	})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "journeyd",
		Subsystem: "scan",
		Name:      "duration_seconds",
		Help:      "Duration of a single reverse connection scan",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	// Predictor metrics (C2)
	PredictorCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "journeyd",
		Subsystem: "predictor",
		Name:      "cache_hits_total",
		Help:      "Delay predictor batch lookups served from cache",
	})

	PredictorCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "journeyd",
		Subsystem: "predictor",
		Name:      "cache_misses_total",
		Help:      "Delay predictor batch lookups that missed the cache",
	})

	PredictorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journeyd",
		Subsystem: "predictor",
		Name:      "failures_total",
		Help:      "Journeys dropped because the delay predictor failed or returned a malformed batch",
	}, []string{"reason"})

	PredictorLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "journeyd",
		Subsystem: "predictor",
		Name:      "latency_seconds",
		Help:      "Latency of a single delay predictor batch call",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "journeyd",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "journeyd",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "journeyd",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records per-request HTTP metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics updates database pool gauges from pgxpool stats. It
// takes an interface rather than *pgxpool.Stat so this package stays free
// of a direct pgx dependency.
func UpdateDBPoolMetrics(stat interface{}) {
	type poolStat interface {
		AcquiredConns() int32
		IdleConns() int32
		TotalConns() int32
	}

	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
