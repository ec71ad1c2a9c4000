package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/cart"
	"github.com/Nanak2/homegoodsreact-sub000/models"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateQuantityInput struct {
	Delta int `json:"delta" binding:"required"`
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.GetString("session_id")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing session"})
		return "", false
	}
	return id, true
}

// GET /api/cart
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":      store.Lines(id),
			"item_count": store.ItemCount(id),
			"subtotal":   store.Total(id).StringFixed(2),
		})
	}
}

// POST /api/cart
func AddCartItem(db *gorm.DB, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity < 1 {
			input.Quantity = 1
		}

		// The line snapshots catalog fields, so the product must exist.
		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		line := store.AddItem(id, product, input.Quantity)
		c.JSON(http.StatusCreated, line)
	}
}

// POST /api/cart/:product_id
func UpdateCartQuantity(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store.UpdateQuantity(id, uint(productID), input.Delta)
		c.JSON(http.StatusOK, gin.H{
			"items":      store.Lines(id),
			"item_count": store.ItemCount(id),
		})
	}
}

// DELETE /api/cart/:product_id
func DeleteCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		store.RemoveItem(id, uint(productID))
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// DELETE /api/cart
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		store.Clear(id)
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
