package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tfboppong-code/joeythebrand/db"
	"github.com/tfboppong-code/joeythebrand/models"
)

type orderInput struct {
	Reference string            `json:"reference"`
	Items     []models.CartLine `json:"items" binding:"required"`
	ItemCount int               `json:"item_count"`
	Amount    float64           `json:"amount"`
	Currency  string            `json:"currency"`
	Email     string            `json:"email" binding:"required,email"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
}

// CreateOrder writes an order record from a cart snapshot. A reference that
// was already recorded is reported as a conflict, not written twice.
func CreateOrder(repo *db.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input orderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		if len(input.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order has no items"})
			return
		}

		if input.Reference == "" {
			input.Reference = uuid.NewString()
		}

		order := models.Order{
			Reference: input.Reference,
			Items:     input.Items,
			ItemCount: input.ItemCount,
			Amount:    input.Amount,
			Currency:  input.Currency,
			Email:     input.Email,
			Name:      input.Name,
			Phone:     input.Phone,
			CreatedAt: time.Now(),
		}
		if order.ItemCount == 0 {
			order.ItemCount = models.CountLines(order.Items)
		}
		if order.Amount == 0 {
			order.Amount = models.TotalAmount(order.Items)
		}

		if err := repo.Create(c.Request.Context(), order); err != nil {
			if errors.Is(err, db.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"error": "Order already recorded"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "reference": order.Reference})
	}
}
