package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/db"
)

// GetOrder looks up a placed order by its payment reference.
func GetOrder(repo *db.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := repo.Get(c.Request.Context(), c.Param("reference"))
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
