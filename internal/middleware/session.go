package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"routemaster/internal/session"
)

// RequireLogin gates the planner surface behind the login check: every
// route-building, saved-routes, and simulation operation needs an
// established session, the same way the app checks at start.
func RequireLogin(sess *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sess.Token(); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		c.Next()
	}
}
