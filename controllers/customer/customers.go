package customerControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/models"
)

// GET /api/admin/customers
func GetAllCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []models.Customer
		query := db.Order("created_at desc")
		if phone := c.Query("phone"); phone != "" {
			query = query.Where("phone = ?", phone)
		}
		if err := query.Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

// GET /api/admin/customers/:id
func GetCustomerByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer ID is required"})
			return
		}

		var customer models.Customer
		if err := db.Preload("Orders").First(&customer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
