package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/models"
)

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	ImageURL    string  `json:"image_url"`
	CategoryID  *uint   `json:"category_id"`
	InStock     *bool   `json:"in_stock"`
}

// CreateProduct adds a catalog entry. Images are hosted externally, so
// only the URL is stored.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			ImageURL:    input.ImageURL,
			CategoryID:  input.CategoryID,
			InStock:     true,
		}
		if input.InStock != nil {
			product.InStock = *input.InStock
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
