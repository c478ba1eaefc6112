package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/tfboppong-code/joeythebrand/controllers/product"
)

// SetupShopRoutes registers the public storefront endpoints: catalog
// listing, single product, and the live-update websocket.
func SetupShopRoutes(r *gin.Engine, deps Deps) {
	shopGroup := r.Group("/products")
	{
		shopGroup.GET("", productcontroller.GetProducts(deps.Catalog))
		shopGroup.GET("/:id", productcontroller.GetProduct(deps.Catalog))
	}

	r.GET("/ws/products", deps.Feed.Handler())
}
