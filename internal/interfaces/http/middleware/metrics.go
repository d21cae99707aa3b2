package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, latencies and in-flight requests. Paths are
// labelled by route template so ids do not explode label cardinality.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		active := m.HTTPActiveRequests.WithLabelValues()
		active.Inc()
		start := time.Now()

		c.Next()

		active.Dec()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		prometheus.RecordHTTPRequest(m, c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

//Personal.AI order the ending
