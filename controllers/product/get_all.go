package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/models"
)

// GetProducts lists the catalog with optional search, price range,
// category filter and sorting.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		switch sortBy {
		case "created_at", "name", "price":
		default:
			sortBy = "created_at"
		}

		query := db.Model(&models.Product{})

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR description ILIKE ?", likePattern, likePattern)
		}

		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
		}

		if categoryID != "" {
			if cid, err := strconv.ParseUint(categoryID, 10, 64); err == nil {
				query = query.Where("category_id = ?", uint(cid))
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
		}

		orderClause := fmt.Sprintf("%s %s", sortBy, sortOrder)
		var products []models.Product
		if err := query.Order(orderClause).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetCategoryIDsBySlug returns the ids of categories whose name matches
// the slug, the lookup the shop view uses to resolve its category tabs.
// URL param: /products/:categorySlug
func GetCategoryIDsBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("categorySlug")
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category slug is required"})
			return
		}
		name := strings.ReplaceAll(slug, "-", " ")

		var categories []models.Category
		if err := db.Where("LOWER(name) = LOWER(?)", name).Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		if len(categories) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		ids := make([]uint, len(categories))
		for i, cat := range categories {
			ids[i] = cat.ID
		}
		c.JSON(http.StatusOK, gin.H{"category_ids": ids})
	}
}
