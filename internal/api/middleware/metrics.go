// Package middleware holds the gin middleware of the headlines API.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"headlines/internal/metrics"
)

const unmatchedPath = "unmatched"

// Metrics records request count, duration and in-flight requests per route.
// The /metrics route itself is not recorded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
