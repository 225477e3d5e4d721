package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/polinatih/school-proj/pkg/identity"
)

// Context keys set by the session middleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// CurrentUserID returns the authenticated principal, "" when anonymous.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// CurrentRole returns the role resolved for the request. Requests that did
// not pass the role middleware carry the default role.
func CurrentRole(c *gin.Context) identity.Role {
	v, ok := c.Get(CtxRole)
	if !ok {
		return identity.DefaultRole
	}
	if r, ok := v.(identity.Role); ok {
		return r
	}
	return identity.DefaultRole
}
