// Package metrics holds the Prometheus collectors of the SmartPack service and
// small helpers to record into them.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute labels requests that hit no route so raw URLs never become label values.
const unmatchedRoute = "unmatched"

var httpLabels = []string{"method", "path", "status_code"}

// HTTP
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, httpLabels)

	HTTPRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, httpLabels)

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Requests currently being served",
	})

	PanicsRecoveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_panics_recovered_total",
		Help: "Total number of handler panics recovered",
	}, []string{"path"})

	RequestTimeoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_request_timeouts_total",
		Help: "Total number of requests that hit their deadline",
	}, []string{"path"})
)

// Packaging. Operations are predict, recommend, estimate and quote.
var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "packaging_predictions_total",
		Help: "Total number of packaging computations",
	}, []string{"operation", "status"})

	PredictionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "packaging_prediction_duration_seconds",
		Help:    "Packaging computation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 5, 8),
	}, []string{"operation"})

	// Savings is the per-quote saving of the recommended box over the shop's default box.
	Savings = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "packaging_savings",
		Help:    "Estimated savings per quote in currency units",
		Buckets: []float64{0, 0.1, 0.5, 1, 2, 5, 10, 25, 50},
	})
)

// Caches
var (
	CacheOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_operations_total",
		Help: "Total number of cache operations",
	}, []string{"cache", "operation", "result"})

	CacheSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cache_size",
		Help: "Current cache size",
	}, []string{"cache"})

	CacheCapacity = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cache_capacity",
		Help: "Cache capacity",
	}, []string{"cache"})
)

// Persistence
var (
	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_total",
		Help: "Total number of report operations",
	}, []string{"operation", "status"})

	// FeedbackEventsTotal results are queued, dropped, stored and failed.
	FeedbackEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_events_total",
		Help: "Total number of feedback events",
	}, []string{"result"})

	AsyncLogEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "async_log_entries_total",
		Help: "Total number of log entries handled by the async logger",
	}, []string{"result"})

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
	}, []string{"name"})
)

// PrometheusMiddleware counts and times every request by route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		HTTPRequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		HTTPRequestsInFlight.Dec()
		labels := []string{c.Request.Method, RouteLabel(c), strconv.Itoa(c.Writer.Status())}
		HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(labels...).Inc()
	}
}

// RouteLabel returns the matched route template, or "unmatched".
func RouteLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

func RecordPrediction(operation string, duration time.Duration, status string) {
	PredictionDuration.WithLabelValues(operation).Observe(duration.Seconds())
	PredictionsTotal.WithLabelValues(operation, status).Inc()
}

func RecordSavings(savings float64) {
	Savings.Observe(savings)
}

func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics sets the size and capacity gauges of one cache.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

func RecordReportOperation(operation, status string) {
	ReportsTotal.WithLabelValues(operation, status).Inc()
}

func RecordFeedback(result string) {
	FeedbackEventsTotal.WithLabelValues(result).Inc()
}

func RecordAsyncLog(result string) {
	AsyncLogEntriesTotal.WithLabelValues(result).Inc()
}

func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func RecordPanic(path string) {
	PanicsRecoveredTotal.WithLabelValues(path).Inc()
}

func RecordTimeout(path string) {
	RequestTimeoutsTotal.WithLabelValues(path).Inc()
}
