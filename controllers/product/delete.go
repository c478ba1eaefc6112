package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/db"
)

// DeleteProduct removes a product document. The caller must send
// confirm=true; without it nothing is deleted.
func DeleteProduct(repo ProductWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != "true" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion requires confirm=true"})
			return
		}

		id := c.Param("id")
		if err := repo.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
