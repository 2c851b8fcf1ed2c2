// Package middleware provides the gin middleware of the SmartPack HTTP API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/smartpack-service/internal/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// ContextKey names values stored on the gin context.
type ContextKey string

// RequestIDKey is the gin context key of the request ID.
const RequestIDKey ContextKey = "request_id"

// RequestID tags every request with an ID. A client-supplied X-Request-ID is kept
// when it is at most 128 printable ASCII bytes; anything else is replaced by a UUID v4.
// The ID is echoed in the response header, stored on the gin context, and bound to a
// request-scoped logger in the request context (see logger.FromContext).
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !acceptableRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// GetRequestID returns the ID set by RequestID, or "" outside that middleware.
func GetRequestID(c *gin.Context) string {
	id, _ := c.Get(string(RequestIDKey))
	s, _ := id.(string)
	return s
}

func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, b := range []byte(id) {
		if b <= ' ' || b > '~' {
			return false
		}
	}
	return true
}
