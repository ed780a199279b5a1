// Package telemetry provides logging and Prometheus metrics for agapay.
//
// All metrics are registered against the default Prometheus registry. The API
// server exposes them on a side-channel port:
//
//	GET http://<host>:<AGAPAY_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// The seed command records seed metrics but, being a one-shot process, does
// not serve them.
package telemetry

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/chariot-giving/agapay/internal/safego"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics, labelled by method, gin route template, and status code.
//
// Example PromQL queries:
//   - Request rate:   rate(http_requests_total[5m])
//   - p99 per route:  histogram_quantile(0.99, sum by (path, le) (rate(http_request_duration_seconds_bucket[5m])))
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Seed metrics.
//
// SeedStepDuration has label {step} (users, organizations, recipients).
// SeedRecordsCreatedTotal has label {entity} and only counts rows actually
// inserted, so a re-run against a seeded store leaves it unchanged.
var (
	SeedStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seed_step_duration_seconds",
			Help:    "Duration of a single seed step, by step name.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"step"},
	)

	SeedRecordsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_records_created_total",
			Help: "Total number of rows inserted by the seed loader, by entity.",
		},
		[]string{"entity"},
	)
)

// DBOpenConnections tracks the number of open connections held by the pool.
// It is sampled by StartDBStatsCollector rather than per-request.
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector samples pool statistics every interval until ctx is
// cancelled or the database becomes unreachable.
func StartDBStatsCollector(ctx context.Context, db *sql.DB, interval time.Duration) {
	safego.Go("db-stats-collector", func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := db.PingContext(ctx); err != nil {
					slog.Warn("db stats collector: database unreachable, stopping collector", "error", err)
					return
				}
				DBOpenConnections.Set(float64(db.Stats().OpenConnections))
			}
		}
	})
}
