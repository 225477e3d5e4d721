package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/pkg/response"
)

// Recovery turns a panic into the standard 500 envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec interface{}) {
		logger.Error("panic recovered",
			zap.Any("panic", rec),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Stack("stack"),
		)
		response.InternalError(c, "Internal server error", fmt.Errorf("%v", rec))
		c.Abort()
	})
}
