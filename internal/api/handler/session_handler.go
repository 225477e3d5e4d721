package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/pkg/response"
)

// SignInPath is where anonymous visitors are sent.
const SignInPath = "/sign-in"

// SessionHandler reports who the caller is.
type SessionHandler struct{}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// GetSession GET /api/session
// Public; the redirect is the landing page for the caller.
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == "" {
		response.OK(c, dto.SessionResponse{Redirect: SignInPath})
		return
	}

	role := CurrentRole(c)
	response.OK(c, dto.SessionResponse{
		Authenticated: true,
		UserID:        userID,
		Role:          role.String(),
		Redirect:      "/" + role.String(),
	})
}
