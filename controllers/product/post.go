package productcontroller

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/models"
)

// ProductWriter is the slice of the product repository the admin handlers
// mutate through; tests substitute fakes.
type ProductWriter interface {
	Create(ctx context.Context, p models.Product) (string, error)
	Save(ctx context.Context, p models.Product) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type productInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       string   `json:"price" binding:"required"`
	Gender      string   `json:"gender" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
}

func (in productInput) toProduct(id string) (models.Product, string) {
	gender, ok := models.ParseGender(in.Gender)
	if !ok {
		return models.Product{}, "gender must be 'men' or 'women'"
	}
	if strings.TrimSpace(in.Name) == "" {
		return models.Product{}, "name is required"
	}
	if strings.TrimSpace(in.Category) == "" {
		return models.Product{}, "category is required"
	}

	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		images = append(images, models.CanonicalImagePath(img))
	}

	return models.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Price:       models.CoercePrice(in.Price),
		Images:      images,
		Gender:      gender,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
	}, ""
}

// CreateProduct adds a product document. Image entries are bare filenames or
// absolute paths; bare names are rewritten to their public path.
func CreateProduct(repo ProductWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		product, problem := input.toProduct("")
		if problem != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": problem})
			return
		}

		id, err := repo.Create(c.Request.Context(), product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		product.ID = id

		c.JSON(http.StatusCreated, product)
	}
}
