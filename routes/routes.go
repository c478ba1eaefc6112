package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/auth"
	"github.com/tfboppong-code/joeythebrand/cart"
	"github.com/tfboppong-code/joeythebrand/catalog"
	"github.com/tfboppong-code/joeythebrand/checkout"
	productcontroller "github.com/tfboppong-code/joeythebrand/controllers/product"
	"github.com/tfboppong-code/joeythebrand/db"
)

// Deps carries the wired application services the route groups need.
type Deps struct {
	Resolver *auth.Resolver
	Toolkit  *auth.IdentityToolkit
	Catalog  *catalog.Reader
	Feed     *productcontroller.Feed
	Carts    *cart.Manager
	Checkout *checkout.Orchestrator
	Gateway  checkout.Verifier
	Products *db.ProductRepository
	Orders   *db.OrderRepository
}

// SetupRoutes is the single entry-point that wires up the shop, cart,
// payment, auth, and admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupAuthRoutes(r, deps)

	SetupShopRoutes(r, deps)

	SetupCartRoutes(r, deps)

	SetupPaymentRoutes(r, deps)

	SetupOrderRoutes(r, deps)

	SetupAdminRoutes(r, deps)
}
