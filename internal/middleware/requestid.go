package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the HTTP header used to propagate the request identifier.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the gin.Context key holding the request ID string.
	RequestIDKey = "request_id"
)

// RequestIDMiddleware ensures every request carries an identifier. An inbound
// X-Request-ID is reused unchanged; otherwise a UUID v4 is generated. The ID
// is stored under RequestIDKey and echoed in the response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
