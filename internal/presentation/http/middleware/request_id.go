package middleware

import (
	"github.com/embedworks/embedvideo-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the context key carrying the per-request ULID.
const RequestIDKey = "requestId"

// RequestIDMiddleware tags every request with a ULID, echoed in the
// X-Request-ID response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = security.GenerateULID()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
