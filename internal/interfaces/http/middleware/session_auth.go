package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bot-commander.backend/internal/domain/entities"
	"bot-commander.backend/pkg/logger"
	"bot-commander.backend/pkg/redis"
)

const (
	// SessionCookieName is the browser cookie carrying the session id
	SessionCookieName = "session_id"
	// CurrentUserKey is the context key for the authenticated user
	CurrentUserKey = "currentUser"
)

// SessionReader resolves a session id to its stored payload
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// UserLoader resolves a user id to its current User row
type UserLoader interface {
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
}

// RequireLogin authenticates the request from its session cookie. The
// user row is re-read on every request, so a deleted user or a demoted
// admin takes effect immediately rather than at session expiry.
func RequireLogin(sessions SessionReader, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		data, err := sessions.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired or invalid",
			})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), data.UserID)
		if err != nil {
			logger.Warn(c.Request.Context(), "session user no longer exists",
				zap.Uint("user_id", data.UserID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired or invalid",
			})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects non-admin users. It must run after RequireLogin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin privileges required",
			})
			return
		}
		c.Next()
	}
}

// GetCurrentUser gets the authenticated user from the request context
func GetCurrentUser(c *gin.Context) (*entities.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}
