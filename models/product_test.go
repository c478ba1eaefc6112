package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFromDocFullShape(t *testing.T) {
	p := ProductFromDoc("p1", map[string]interface{}{
		"name":        "Linen Kaftan",
		"price":       249.99,
		"images":      []interface{}{"/products/kaftan1.jpg", "/products/kaftan2.jpg"},
		"gender":      "women",
		"category":    "Kaftans",
		"description": "Hand-stitched linen.",
	})

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Linen Kaftan", p.Name)
	assert.Equal(t, 249.99, p.Price)
	assert.Equal(t, []string{"/products/kaftan1.jpg", "/products/kaftan2.jpg"}, p.Images)
	assert.Equal(t, GenderWomen, p.Gender)
	assert.Equal(t, "Kaftans", p.Category)
	assert.Equal(t, "Hand-stitched linen.", p.Description)
}

func TestProductFromDocLegacyImageFields(t *testing.T) {
	p := ProductFromDoc("p2", map[string]interface{}{
		"name":  "Shirt",
		"image": "/products/shirt.jpg",
	})
	assert.Equal(t, []string{"/products/shirt.jpg"}, p.Images)

	p = ProductFromDoc("p3", map[string]interface{}{
		"name": "Shirt",
		"img":  "/products/old.jpg",
	})
	assert.Equal(t, []string{"/products/old.jpg"}, p.Images)

	p = ProductFromDoc("p4", map[string]interface{}{"name": "Shirt"})
	assert.Equal(t, []string{""}, p.Images, "images stays non-empty after normalization")
}

func TestProductFromDocDefaults(t *testing.T) {
	p := ProductFromDoc("p5", map[string]interface{}{})

	assert.Equal(t, GenderMen, p.Gender, "missing gender coerces to men")
	assert.Equal(t, DefaultDescription, p.Description)
	assert.Zero(t, p.Price)

	p = ProductFromDoc("p6", map[string]interface{}{"gender": "unisex"})
	assert.Equal(t, GenderMen, p.Gender, "unknown gender coerces to men")
}

func TestProductFromDocIntegerPrice(t *testing.T) {
	p := ProductFromDoc("p7", map[string]interface{}{"price": int64(150)})
	assert.Equal(t, 150.0, p.Price)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "shirts", NormalizeKey("Shirts"))
	assert.Equal(t, "shirts", NormalizeKey(" shirts "))
	assert.Equal(t, "shirts", NormalizeKey("SHIRTS"))
	assert.Equal(t, "lounge wear", NormalizeKey("  Lounge   Wear "))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestParseGender(t *testing.T) {
	g, ok := ParseGender(" Women ")
	assert.True(t, ok)
	assert.Equal(t, GenderWomen, g)

	g, ok = ParseGender("MEN")
	assert.True(t, ok)
	assert.Equal(t, GenderMen, g)

	_, ok = ParseGender("kids")
	assert.False(t, ok)
}

func TestCoercePrice(t *testing.T) {
	assert.Equal(t, 49.5, CoercePrice("49.50"))
	assert.Equal(t, 0.0, CoercePrice("not-a-number"))
	assert.Equal(t, 0.0, CoercePrice(""))
	assert.Equal(t, 0.0, CoercePrice("-12"))
}

func TestCanonicalImagePath(t *testing.T) {
	assert.Equal(t, "/products/shirt1.jpg", CanonicalImagePath("shirt1.jpg"))
	assert.Equal(t, "/uploads/shirt1.jpg", CanonicalImagePath("/uploads/shirt1.jpg"))
	assert.Equal(t, "", CanonicalImagePath("  "))
}

func TestCartTotals(t *testing.T) {
	lines := []CartLine{
		{ProductID: "a", UnitPrice: 100, Quantity: 1},
		{ProductID: "b", UnitPrice: 25, Quantity: 2},
	}
	assert.Equal(t, 3, CountLines(lines))
	assert.Equal(t, 150.0, TotalAmount(lines))

	clone := CloneLines(lines)
	clone[0].Quantity = 99
	assert.Equal(t, 1, lines[0].Quantity)
}
