package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nanak2/homegoodsreact-sub000/config"
)

// ValidateAPIKey gates the admin surface behind the shared dashboard key.
func ValidateAPIKey(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-KEY")
		if cfg.AdminKey == "" || apiKey != cfg.AdminKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
