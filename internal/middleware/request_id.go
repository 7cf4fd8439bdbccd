package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader  = "X-Request-Id"
	contextRequestID = "request_id"
)

// RequestID propagates a caller supplied request id or generates a new one.
// Ids that are not UUIDs are replaced.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set(contextRequestID, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// RequestIDFromContext returns the id assigned by RequestID, if any.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(contextRequestID)
}
