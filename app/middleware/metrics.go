package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// In-flight HTTP requests
	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Public cargo searches partitioned by inferred search type and outcome
	cargoSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cargo_searches_total",
			Help: "Total public cargo searches by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	// Sheet sync runs partitioned by outcome
	sheetSyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheet_sync_runs_total",
			Help: "Total sheet sync runs by outcome",
		},
		[]string{"outcome"},
	)

	// Records present after the most recent successful sync
	sheetSyncRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sheet_sync_records",
			Help: "Record count from the most recent successful sheet sync",
		},
	)
)

// Metrics returns a Fiber v3 middleware that records basic Prometheus metrics.
// Labels are kept low-cardinality by using the matched route path when available.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		method := c.Method()
		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path // Use route template to avoid high cardinality
		}

		labels := prometheus.Labels{
			"method": method,
			"route":  route,
			"status": strconv.Itoa(status),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}

// RecordSearch counts one public search by type and hit/miss outcome
func RecordSearch(searchType string, found bool) {
	outcome := "miss"
	if found {
		outcome = "hit"
	}
	cargoSearchesTotal.With(prometheus.Labels{"type": searchType, "outcome": outcome}).Inc()
}

// RecordSyncRun counts one sheet sync run and, on success, the dataset size
func RecordSyncRun(err error, records int) {
	if err != nil {
		sheetSyncRunsTotal.With(prometheus.Labels{"outcome": "error"}).Inc()
		return
	}
	sheetSyncRunsTotal.With(prometheus.Labels{"outcome": "success"}).Inc()
	sheetSyncRecords.Set(float64(records))
}
