package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/config"
	customerControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/customer"
	orderControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/order"
	productControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/product"
	"github.com/Nanak2/homegoodsreact-sub000/middleware"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires
// API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateAPIKey(cfg))
	{
		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.GET("/customer/:customerID", orderControllers.GetCustomerOrdersHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// ─────────── Customer Management ───────────
		customerAdmin := adminGroup.Group("/customers")
		{
			customerAdmin.GET("", customerControllers.GetAllCustomers(db))
			customerAdmin.GET("/:id", customerControllers.GetCustomerByID(db))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db))
			categoryAdmin.GET("", productControllers.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}
	}
}
