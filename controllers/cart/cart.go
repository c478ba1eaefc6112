package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tfboppong-code/joeythebrand/cart"
	"github.com/tfboppong-code/joeythebrand/catalog"
)

// scopeStore resolves the caller's cart from the identity the auth
// middleware attached.
func scopeStore(c *gin.Context, mgr *cart.Manager) (*cart.Store, bool) {
	uid := c.GetString("user_id")
	store, err := mgr.ForScope(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return nil, false
	}
	return store, true
}

func cartPayload(store *cart.Store) gin.H {
	return gin.H{
		"items": store.Lines(),
		"count": store.Count(),
		"total": store.Total(),
	}
}

// GetCart returns the caller's cart lines with the derived count and total.
func GetCart(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := scopeStore(c, mgr)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartPayload(store))
	}
}

// AddToCart adds one unit of a product. A repeated product increments its
// existing line instead of adding a new one.
func AddToCart(mgr *cart.Manager, reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProductID string `json:"product_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		product, found := reader.Product(input.ProductID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		store, ok := scopeStore(c, mgr)
		if !ok {
			return
		}
		if err := store.Add(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, cartPayload(store))
	}
}

// RemoveFromCart drops a product's whole line regardless of quantity.
// Removing a product that is not in the cart changes nothing.
func RemoveFromCart(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := scopeStore(c, mgr)
		if !ok {
			return
		}
		if err := store.Remove(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, cartPayload(store))
	}
}

// ClearCart empties the caller's cart.
func ClearCart(mgr *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := scopeStore(c, mgr)
		if !ok {
			return
		}
		if err := store.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, cartPayload(store))
	}
}
