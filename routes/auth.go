package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/auth"
	"github.com/tfboppong-code/joeythebrand/middleware"
)

// SetupAuthRoutes registers the public session endpoints. Logout needs a
// live session so it runs behind the token middleware.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/status", auth.StatusHandler(deps.Resolver))
		authGroup.POST("/login", auth.LoginHandler(deps.Resolver, deps.Toolkit))
		authGroup.POST("/signup", auth.SignupHandler(deps.Resolver, deps.Toolkit))
		authGroup.POST("/session", auth.SessionHandler(deps.Resolver))
		authGroup.POST("/guest", auth.GuestHandler(deps.Resolver))
		authGroup.POST("/reset-password", auth.ResetPasswordHandler(deps.Toolkit))

		authGroup.POST("/logout",
			middleware.ValidateToken(deps.Resolver, "/login"),
			auth.LogoutHandler(deps.Resolver),
		)
	}
}
