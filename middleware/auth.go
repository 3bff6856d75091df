package middleware

import (
	"net/http"
	"strings"
	"time"

	"yourbuyer-api/models"
	"yourbuyer-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BearerToken extracts the token from an Authorization header, or "" when
// the header is missing or malformed.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthMiddleware validates the bearer token signature and then checks it
// against the access-token store, so tokens revoked by logout stop working
// before their JWT expiry.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated."})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated."})
			c.Abort()
			return
		}

		var accessToken models.AccessToken
		if err := db.Where("token_hash = ? AND user_id = ?", utils.HashToken(token), claims.UserID).First(&accessToken).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated."})
			c.Abort()
			return
		}

		now := time.Now()
		db.Model(&accessToken).Update("last_used_at", now)

		c.Set("user_id", claims.UserID)
		c.Set("access_token_id", accessToken.ID)
		c.Next()
	}
}
