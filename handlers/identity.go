package handlers

import (
	"yourbuyer-api/middleware"
	"yourbuyer-api/models"
	"yourbuyer-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const anonymousTokenHeader = "X-Anonymous-Token"

// resolveCartIdentity decides who owns the cart rows for this request.
// Resolution order: user id set by the auth middleware, then a bearer token
// presented on an unauthenticated route, then the anonymous-token header.
// ok is false when the request carries no usable identity.
func resolveCartIdentity(c *gin.Context, db *gorm.DB) (identity models.CartIdentity, ok bool) {
	if userID, exists := c.Get("user_id"); exists {
		return models.UserIdentity(userID.(uint)), true
	}

	// Cart routes are public, so a logged-in client may still send its
	// bearer token here. It only counts when the token survives the
	// access-token store check, same as the auth middleware.
	if token := middleware.BearerToken(c); token != "" {
		if claims, err := utils.ValidateToken(token); err == nil {
			var count int64
			db.Model(&models.AccessToken{}).
				Where("token_hash = ? AND user_id = ?", utils.HashToken(token), claims.UserID).
				Count(&count)
			if count > 0 {
				return models.UserIdentity(claims.UserID), true
			}
		}
	}

	identity = models.AnonymousIdentity(c.GetHeader(anonymousTokenHeader))
	return identity, !identity.IsZero()
}

// requestBaseURL reconstructs scheme://host for building absolute image
// URLs, honoring X-Forwarded-Proto when the API sits behind a proxy.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
