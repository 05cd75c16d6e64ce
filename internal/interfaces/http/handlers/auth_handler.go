package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bot-commander.backend/internal/domain/entities"
	domainerrors "bot-commander.backend/internal/domain/errors"
	"bot-commander.backend/internal/interfaces/http/middleware"
	"bot-commander.backend/internal/interfaces/http/response"
	"bot-commander.backend/pkg/logger"
	"bot-commander.backend/pkg/redis"
)

// AuthService is the authentication surface the handler depends on
type AuthService interface {
	Login(ctx context.Context, input *entities.LoginInput) (*entities.User, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
}

// SessionManager writes and revokes server-side sessions
type SessionManager interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

var newSessionID = func() string { return uuid.New().String() }

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth       AuthService
	sessions   SessionManager
	sessionTTL time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService, sessions SessionManager, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Login handles user login
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email and password are required"))
		return
	}

	user, err := h.auth.Login(c.Request.Context(), &input)
	if err != nil {
		// unknown user, missing credentials and wrong password all
		// collapse into the same response
		if errors.Is(err, domainerrors.ErrNotFound) ||
			errors.Is(err, domainerrors.ErrNoCredentials) ||
			errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		response.Error(c, err)
		return
	}

	sessionID := newSessionID()
	err = h.sessions.CreateSession(c.Request.Context(), sessionID, &redis.SessionData{
		UserID: user.UserID,
		Email:  user.Email,
	}, h.sessionTTL)
	if err != nil {
		logger.Error(c.Request.Context(), "session creation failed", zap.Error(err))
		response.Error(c, domainerrors.InternalError(err))
		return
	}

	c.SetCookie(middleware.SessionCookieName, sessionID, int(h.sessionTTL.Seconds()), "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
	})
}

// Logout revokes the session and clears the cookie
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && sessionID != "" {
		if err := h.sessions.DeleteSession(c.Request.Context(), sessionID); err != nil {
			logger.Warn(c.Request.Context(), "session deletion failed", zap.Error(err))
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated user
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	response.Success(c, http.StatusOK, user)
}
