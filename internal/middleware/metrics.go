package middleware

import (
	"strconv"
	"time"

	"github.com/chariot-giving/agapay/internal/telemetry"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records http_requests_total{method, path, status} and
// http_request_duration_seconds{method, path} for every request.
//
// The path label is the matched route template from c.FullPath() (for example
// /v1/recipients/:id), so recipient IDs never become label values. Unmatched
// requests use "<no-route>".
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "<no-route>"
		}

		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		telemetry.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		telemetry.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
