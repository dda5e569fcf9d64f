package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finrecon-backend/internal/shared/server/middleware"
	"finrecon-backend/internal/shared/server/respond"
	"finrecon-backend/internal/users"
)

// SessionEnder closes a login session on logout.
type SessionEnder interface {
	End(ctx context.Context, sessionID string) error
}

// LocalService handles username/password auth.
type LocalService struct {
	Users    *users.Service
	Sessions SessionStarter
	Ender    SessionEnder
	Audit    AuditRecorder
}

// RegisterRoutes attaches local auth routes. Logout is registered on the
// authed group so the session claim is available.
func (s *LocalService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", s.register)
	rg.POST("/auth/login", s.login)
}

// RegisterAuthedRoutes attaches routes that need a valid token.
func (s *LocalService) RegisterAuthedRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", s.logout)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Company  string `json:"company"`
}

func (s *LocalService) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ctx := c.Request.Context()
	user, err := s.Users.Register(ctx, req.Username, req.Email, req.Password, req.FullName, req.Company)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUsernameTaken), errors.Is(err, users.ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}

	token, sessionID, err := issueToken(ctx, s.Sessions, user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	if s.Audit != nil {
		s.Audit.Record(ctx, user.ID, sessionID, "register", user.Username)
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"token":     token,
		"sessionId": sessionID,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"fullName": user.FullName,
		},
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *LocalService) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username and password are required", nil)
		return
	}

	ctx := c.Request.Context()
	user, err := s.Users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", nil)
		case errors.Is(err, users.ErrInactiveAccount):
			respond.Error(c, http.StatusForbidden, "account_disabled", "account is deactivated", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		}
		return
	}

	token, sessionID, err := issueToken(ctx, s.Sessions, user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	if s.Audit != nil {
		s.Audit.Record(ctx, user.ID, sessionID, "login", "password")
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"token":     token,
		"sessionId": sessionID,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"fullName": user.FullName,
		},
	})
}

func (s *LocalService) logout(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserIDFromContext(c)
	sessionID := middleware.SessionIDFromContext(c)

	if s.Ender != nil && sessionID != "" {
		if err := s.Ender.End(ctx, sessionID); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to end session", nil)
			return
		}
	}
	if s.Audit != nil {
		s.Audit.Record(ctx, userID, sessionID, "logout", "")
	}

	respond.JSON(c, http.StatusOK, gin.H{"status": "logged_out"})
}
