package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/catalog"
)

// GetProduct serves a single product by document ID.
func GetProduct(reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := reader.Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Product catalog is unavailable"})
			return
		}

		product, found := reader.Product(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
