package paymentControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/cart"
	"github.com/tfboppong-code/joeythebrand/checkout"
)

// PlaceOrder starts a checkout for the caller's cart and returns the hosted
// payment page URL plus the transaction reference.
func PlaceOrder(orch *checkout.Orchestrator, mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
			Name  string `json:"name"`
			Phone string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		uid := c.GetString("user_id")
		store, err := mgr.ForScope(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
			return
		}

		paymentURL, reference, err := orch.Begin(c.Request.Context(), store, checkout.Contact{
			Email: input.Email,
			Name:  input.Name,
			Phone: input.Phone,
		})
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.Is(err, checkout.ErrEmailRequired):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment_url": paymentURL,
			"reference":   reference,
		})
	}
}

// PaymentCallback is the gateway's success redirect. The reference is
// verified server-side before any order is written; a failed verification
// leaves the cart as it was.
func PaymentCallback(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Query("reference")
		if reference == "" {
			reference = c.Query("trxref")
		}
		if reference == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing reference"})
			return
		}

		ok, err := orch.Confirm(c.Request.Context(), reference)
		if err != nil {
			if errors.Is(err, checkout.ErrUnknownReference) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Unknown payment reference"})
				return
			}
			log.Printf("❌ payment %s confirmation failed: %v", reference, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful", "reference": reference})
			return
		}

		log.Printf("✅ payment %s verified, order placed", reference)
		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully", "reference": reference})
	}
}

// ClosePayment handles the customer dismissing the payment page. The
// checkout is abandoned; the cart is untouched.
func ClosePayment(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Reference string `json:"reference" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		orch.Close(input.Reference)
		c.JSON(http.StatusOK, gin.H{"message": "Payment closed"})
	}
}
