package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/tfboppong-code/joeythebrand/controllers/payment"
	"github.com/tfboppong-code/joeythebrand/middleware"
)

// SetupPaymentRoutes registers checkout. Starting and abandoning a payment
// need a session; the gateway's redirect callback arrives without one.
func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	paymentGroup := r.Group("/payment")
	{
		paymentGroup.POST("/checkout",
			middleware.ValidateToken(deps.Resolver, "/login"),
			paymentControllers.PlaceOrder(deps.Checkout, deps.Carts),
		)
		paymentGroup.POST("/close",
			middleware.ValidateToken(deps.Resolver, "/login"),
			paymentControllers.ClosePayment(deps.Checkout),
		)

		paymentGroup.GET("/callback", paymentControllers.PaymentCallback(deps.Checkout))
	}

	r.POST("/verify-payment",
		middleware.ValidateToken(deps.Resolver, "/login"),
		paymentControllers.VerifyPayment(deps.Gateway),
	)
}
