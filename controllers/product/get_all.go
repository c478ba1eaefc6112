package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/catalog"
	"github.com/tfboppong-code/joeythebrand/models"
)

// GetProducts serves the live catalog. Optional gender and category query
// params narrow the listing; an unknown gender is rejected rather than
// silently matching nothing.
func GetProducts(reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := reader.Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Product catalog is unavailable"})
			return
		}

		genderParam := c.Query("gender")
		category := c.Query("category")

		if genderParam == "" && category == "" {
			c.JSON(http.StatusOK, gin.H{"products": reader.Products()})
			return
		}

		var gender models.Gender
		if genderParam != "" {
			parsed, ok := models.ParseGender(genderParam)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be 'men' or 'women'"})
				return
			}
			gender = parsed
		}

		c.JSON(http.StatusOK, gin.H{"products": reader.Filter(gender, category)})
	}
}
