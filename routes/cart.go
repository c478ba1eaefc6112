package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/tfboppong-code/joeythebrand/controllers/cart"
	"github.com/tfboppong-code/joeythebrand/middleware"
)

// SetupCartRoutes registers the cart endpoints. Guests hold sessions too,
// so every cart call runs behind the token middleware.
func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(deps.Resolver, "/login"))
	{
		cartGroup.GET("", cartControllers.GetCart(deps.Carts))
		cartGroup.POST("/items", cartControllers.AddToCart(deps.Carts, deps.Catalog))
		cartGroup.DELETE("/items/:id", cartControllers.RemoveFromCart(deps.Carts))
		cartGroup.DELETE("", cartControllers.ClearCart(deps.Carts))
	}
}
