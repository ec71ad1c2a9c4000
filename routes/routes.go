package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nanak2/homegoodsreact-sub000/cart"
	"github.com/Nanak2/homegoodsreact-sub000/config"
	orderControllers "github.com/Nanak2/homegoodsreact-sub000/controllers/order"
)

// SetupRoutes is the single entry-point that wires up the shop and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store *cart.Store, cfg *config.Config) {
	guard := orderControllers.NewIdempotencyGuard(15 * time.Minute)

	// Public storefront routes (session-scoped cart and checkout)
	SetupShopRoutes(r, db, store, cfg, guard)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db, cfg)
}
