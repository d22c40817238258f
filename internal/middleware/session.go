package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stageai/api/internal/models"
	"stageai/api/internal/session"
)

const currentUserKey = "current_username"

// RequireSession resolves the session cookie and aborts with 401 when it
// is missing, unknown or expired.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		username, ok, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(currentUserKey, username)
		c.Next()
	}
}

// OptionalSession resolves the cookie when present and falls back to the
// anonymous sentinel otherwise. It never aborts.
func OptionalSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := models.AnonymousUser
		if token, err := c.Cookie(session.CookieName); err == nil {
			if resolved, ok, err := sessions.Resolve(c.Request.Context(), token); err == nil && ok {
				username = resolved
			}
		}

		c.Set(currentUserKey, username)
		c.Next()
	}
}

// CurrentUser returns the username set by the session middlewares.
func CurrentUser(c *gin.Context) string {
	if username, ok := c.Get(currentUserKey); ok {
		if s, ok := username.(string); ok {
			return s
		}
	}
	return models.AnonymousUser
}
