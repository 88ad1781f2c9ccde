package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"backoffice/internal/metrics"
)

// Metrics observes request latency per route pattern and status.
func Metrics(collector metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.RecordHTTPRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
