package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planhub-io/planhub/internal/pkg/metrics"
)

// Prometheus records request duration per route. The route template
// (c.FullPath) is used rather than the raw URL to keep label cardinality
// bounded.
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
