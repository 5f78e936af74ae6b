package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnemo-go/internal/app"
)

const sessionUserKey = "userID"

// UserLoaderMiddleware reconciles the browser cookie with the controller's
// session slot. A cookie naming an account that is no longer logged in on
// the controller side is a zombie and gets cleared.
func UserLoaderMiddleware(log *zap.Logger, ctrl *app.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(sessionUserKey).(string)
		if !ok {
			c.Next()
			return
		}

		state := ctrl.State()
		if !state.IsAuthenticated || state.CurrentUser == nil || state.CurrentUser.ID != userID {
			session.Clear()
			session.Options(sessions.Options{Path: "/", MaxAge: -1})
			if err := session.Save(); err != nil {
				log.Warn("Failed to clear stale session cookie", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set("user", state.CurrentUser)
		c.Next()
	}
}

// AuthRequired rejects requests that did not resolve to a logged-in user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Не авторизован"})
			return
		}
		c.Next()
	}
}

// AdminRequired additionally demands the administrator role. The controller
// re-checks on every admin command; this just fails fast at the HTTP edge.
func AdminRequired(ctrl *app.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := ctrl.State()
		if state.CurrentUser == nil || !state.CurrentUser.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Недостаточно прав"})
			return
		}
		c.Next()
	}
}
