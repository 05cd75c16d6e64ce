package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bot-commander.backend/internal/metrics"
)

// MetricsMiddleware records request duration per route template. The
// template ("/api/bots/:id") is used instead of the raw path to keep
// label cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
