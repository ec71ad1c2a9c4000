package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Nanak2/homegoodsreact-sub000/config"
)

// CreateSession issues an anonymous browsing session the cart store is
// keyed by. This is cart scoping, not user authentication.
//
// POST /api/session
func CreateSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := "sess_" + uuid.NewString()
		expiresAt := time.Now().Add(cfg.CartTTL)

		token, err := issueSessionToken(cfg, sessionID, expiresAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": sessionID,
			"token":      token,
			"expires_at": expiresAt,
		})
	}
}

func issueSessionToken(cfg *config.Config, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
