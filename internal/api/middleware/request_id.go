package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the context key of the request id.
const RequestIDKey = "request_id"

// requestIDMaxLen bounds client-supplied ids so they stay safe to log.
const requestIDMaxLen = 64

// RequestID propagates X-Request-ID, generating a UUID when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(RequestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
