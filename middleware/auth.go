package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/auth"
	"github.com/tfboppong-code/joeythebrand/models"
)

// ValidateToken checks the Bearer session token against the live session
// registry and attaches the resolved identity. Requests without a valid,
// still-open session are sent to the login page. Each accepted request
// counts as activity for the idle watchdog.
func ValidateToken(resolver *auth.Resolver, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		uid, err := auth.ParseSessionToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		identity, ok := resolver.Current(uid)
		if !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		resolver.Touch(uid)
		c.Set("user_id", identity.UID)
		c.Set("identity", identity)
		c.Next()
	}
}

// RequireAdmin gates a route group to admin identities. Anyone else is sent
// to the admin login page.
func RequireAdmin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("identity")
		if !exists {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		identity, ok := v.(models.Identity)
		if !ok || !identity.IsAdmin() {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
