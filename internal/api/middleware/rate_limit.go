package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/api/handler"
	"github.com/polinatih/school-proj/pkg/response"
)

// Limiter is implemented by the redis client.
type Limiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit applies a sliding-window limit per caller and route. The caller
// is the principal when known, the client IP otherwise. A nil limiter or a
// limiter error lets the request through.
func RateLimit(limiter Limiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		caller := handler.CurrentUserID(c)
		if caller == "" {
			caller = c.ClientIP()
		}
		key := fmt.Sprintf("%s:%s %s", caller, c.Request.Method, c.FullPath())

		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
