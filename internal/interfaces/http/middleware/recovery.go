package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

// Recovery turns a panic into a 500 with the standard error body.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					logging.String("panic", fmt.Sprint(rec)),
					logging.String("path", c.Request.URL.Path),
					logging.String("request_id", GetRequestID(c)),
					logging.String("stack", string(debug.Stack())))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    string(errors.ErrCodeInternal),
					"message": errors.DefaultMessageForCode(errors.ErrCodeInternal),
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize caps request bodies at n bytes.
func MaxBodySize(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

//Personal.AI order the ending
