package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/checkout"
)

// VerifyPayment runs the server-side transaction-status lookup for a
// reference. The gateway secret never leaves this round trip. A well-formed
// "not successful" status is a 200 with success=false, not an error.
func VerifyPayment(verifier checkout.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Reference string `json:"reference" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reference is required"})
			return
		}

		res, err := verifier.Verify(c.Request.Context(), input.Reference)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification failed"})
			return
		}

		if !res.Success {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "transactionData": res.Data})
	}
}
