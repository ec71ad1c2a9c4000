package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/auth"
	"github.com/Nanak2/homegoodsreact-sub000/cart"
	"github.com/Nanak2/homegoodsreact-sub000/config"
	cartControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/cart"
	checkoutControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/checkout"
	orderControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/order"
	productControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/product"
	"github.com/Nanak2/homegoodsreact-sub000/middleware"
)

// SetupShopRoutes registers the public "/api/*" storefront endpoints.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB, store *cart.Store, cfg *config.Config, guard *orderControllers.IdempotencyGuard) {
	api := r.Group("/api")
	{
		// ──────────────── Sessions ────────────────
		api.POST("/session", auth.CreateSession(cfg))

		// ──────────────── Catalog ────────────────
		api.GET("/products", productControllers.GetProducts(db))
		api.GET("/products/:categorySlug", productControllers.GetCategoryIDsBySlug(db))
		api.GET("/product/:id", productControllers.GetProductByID(db))
		api.GET("/categories", productControllers.GetAllCategoriesWithProducts(db))

		// ──────────────── Order placement ────────────────
		// Legacy storefront posts the full payload directly.
		api.POST("/order", orderControllers.PlaceOrderHandler(db, guard))

		// Live order feed for the dashboard.
		api.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

		// ──────────────── Shopping Cart ────────────────
		cartGroup := api.Group("/cart")
		cartGroup.Use(middleware.ValidateSession(cfg))
		{
			cartGroup.GET("", cartControllers.GetCart(store))
			cartGroup.POST("", cartControllers.AddCartItem(db, store))
			cartGroup.POST("/:product_id", cartControllers.UpdateCartQuantity(store))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(store))
			cartGroup.DELETE("", cartControllers.ClearCart(store))
		}

		// ──────────────── Checkout ────────────────
		checkoutGroup := api.Group("/checkout")
		checkoutGroup.Use(middleware.ValidateSession(cfg))
		{
			checkoutGroup.GET("/summary", checkoutControllers.SummaryHandler(store, cfg))
			checkoutGroup.POST("", checkoutControllers.SubmitHandler(db, store, cfg, guard))
		}
	}
}
