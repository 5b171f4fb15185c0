// Package metrics provides Prometheus metrics collection for the packaging service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PackagingEstimatesTotal counts estimates by mode (single, multi) and outcome (complete, partial).
	PackagingEstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packaging_estimates_total",
			Help: "Total number of packaging estimates",
		},
		[]string{"mode", "status"},
	)

	// PackagingEstimateDuration tracks estimate duration, catalog lookup included.
	PackagingEstimateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "packaging_estimate_duration_seconds",
			Help:    "Packaging estimate duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"mode"},
	)

	// PackagingItemsUnpackedTotal counts requested items that no package could take.
	PackagingItemsUnpackedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packaging_items_unpacked_total",
			Help: "Total number of requested items left unpacked",
		},
		[]string{"mode"},
	)

	// CatalogFallbacksTotal counts catalog reads served from the default catalog, by reason.
	CatalogFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packaging_catalog_fallbacks_total",
			Help: "Total number of catalog reads served from the default catalog",
		},
		[]string{"reason"},
	)

	// CircuitBreakerState exposes each breaker's state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// RequestLogEntriesTotal counts request log entries by outcome (enqueued, dropped, written, failed).
	RequestLogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_log_entries_total",
			Help: "Total number of request log entries by outcome",
		},
		[]string{"result"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPackagingEstimate records metrics for one estimate.
func RecordPackagingEstimate(mode string, duration time.Duration, complete bool, unpacked int) {
	status := "complete"
	if !complete {
		status = "partial"
	}
	PackagingEstimateDuration.WithLabelValues(mode).Observe(duration.Seconds())
	PackagingEstimatesTotal.WithLabelValues(mode, status).Inc()
	if unpacked > 0 {
		PackagingItemsUnpackedTotal.WithLabelValues(mode).Add(float64(unpacked))
	}
}

// RecordCatalogFallback records a catalog read answered by the default catalog.
func RecordCatalogFallback(reason string) {
	CatalogFallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordCircuitBreakerState records the current state of a named circuit breaker.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRequestLogEntries adds n request log entries with the given outcome.
func RecordRequestLogEntries(result string, n int) {
	if n > 0 {
		RequestLogEntriesTotal.WithLabelValues(result).Add(float64(n))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}
