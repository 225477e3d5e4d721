package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/api/handler"
	"github.com/polinatih/school-proj/pkg/identity"
	"github.com/polinatih/school-proj/pkg/jwt"
	"github.com/polinatih/school-proj/pkg/metrics"
	"github.com/polinatih/school-proj/pkg/response"
)

// Session reads the session token from "Authorization: Bearer <token>" or
// the session cookie and stores the principal id. A missing or invalid
// token leaves the request anonymous; RequireAuth decides what that means.
func Session(jwtMgr *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}
		if token != "" {
			if claims, err := jwtMgr.ParseToken(token); err == nil {
				c.Set(handler.CtxUserID, claims.UserID())
			}
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler.CurrentUserID(c) == "" {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ResolveRole looks up the principal's role once per request. A principal
// the provider does not know is treated as anonymous. Other provider
// failures are not retried and end the request with 500. m may be nil.
func ResolveRole(resolver identity.Resolver, m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := handler.CurrentUserID(c)
		if userID == "" {
			c.Next()
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), userID)
		if errors.Is(err, identity.ErrUserNotFound) {
			observeRole(m, "unknown")
			c.Set(handler.CtxUserID, "")
			c.Next()
			return
		}
		if err != nil {
			observeRole(m, "error")
			logger.Error("role lookup failed", zap.String("user_id", userID), zap.Error(err))
			response.InternalError(c, "Failed to resolve user role", err)
			c.Abort()
			return
		}
		observeRole(m, "ok")

		c.Set(handler.CtxRole, role)
		c.Next()
	}
}

func observeRole(m *metrics.Metrics, outcome string) {
	if m != nil {
		m.RoleLookups.WithLabelValues(outcome).Inc()
	}
}

// RoleAuth admits only the given roles. With enforce off every
// authenticated caller passes.
func RoleAuth(enforce bool, allowedRoles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enforce {
			c.Next()
			return
		}
		if handler.CurrentUserID(c) == "" {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		role := handler.CurrentRole(c)
		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Forbidden")
		c.Abort()
	}
}
