package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestIDHeader is the header carrying the request correlation ID
const RequestIDHeader = "X-Request-Id"

// RequestID returns a gin middleware that attaches a correlation ID to each
// request, reusing the caller's ID when one is supplied
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}

// RequestIDFromContext returns the request's correlation ID, empty when the
// RequestID middleware is not installed
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
