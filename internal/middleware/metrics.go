package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"ovnup/services"
)

/**
 * HTTP request metrics middleware
 * @description
 * - Counts requests served by the status API
 * - Records request handling time
 * - Counts requests answered with an error status
 */
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := c.Writer.Status()

		handler := c.FullPath()
		if handler == "" {
			handler = "unknown"
		}

		services.IncrementRequestCount(handler)
		services.RecordRequestDuration(handler, duration)

		if statusCode >= 400 {
			services.IncrementErrorCount(handler)
		}
	}
}
