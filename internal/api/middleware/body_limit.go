package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polinatih/school-proj/pkg/response"
)

// BodyLimit caps request bodies at maxBytes. Requests that announce a larger
// body are rejected before any handler reads it.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
