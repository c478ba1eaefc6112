package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/tfboppong-code/joeythebrand/controllers/order"
	"github.com/tfboppong-code/joeythebrand/middleware"
)

// SetupOrderRoutes registers direct order creation for clients that run the
// gateway handler themselves and post the verified snapshot.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	r.POST("/orders",
		middleware.ValidateToken(deps.Resolver, "/login"),
		orderControllers.CreateOrder(deps.Orders),
	)
}
