// Package middleware holds the gin middleware chain of the API server.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
)

const (
	// HeaderRequestID carries the request id in both directions.
	HeaderRequestID = "X-Request-ID"

	contextKeyRequestID = "request_id"
	maxRequestIDLength  = 128
)

// RequestID propagates X-Request-ID or assigns a new UUID, and attaches a
// request-scoped logger to the request context.
func RequestID(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)

		if logger != nil {
			ctx := logging.WithContext(c.Request.Context(), logger.With(logging.String("request_id", id)))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

//Personal.AI order the ending
