package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/tfboppong-code/joeythebrand/controllers/order"
	productcontroller "github.com/tfboppong-code/joeythebrand/controllers/product"
	"github.com/tfboppong-code/joeythebrand/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the admin gate.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(
		middleware.ValidateToken(deps.Resolver, "/admin/login"),
		middleware.RequireAdmin("/admin/login"),
	)
	{
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(deps.Products))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(deps.Products))
			productAdmin.GET("", productcontroller.GetProducts(deps.Catalog))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(deps.Products))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(deps.Catalog))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("/:reference", orderControllers.GetOrder(deps.Orders))
		}
	}
}
