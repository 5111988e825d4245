package middleware

import (
	"net/http"
	"time"

	"community-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequirePremium gates routes on the reconciled entitlement fields.
// It reads only the local record; a stale value heals on the next
// /check-subscription or webhook pass.
func RequirePremium(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var user users.User

		if err := db.Where("email = ?", email).First(&user).Error; err != nil || !user.IsPremium {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Premium subscription required",
			})
			return
		}

		if user.PremiumUntil != nil && time.Now().After(*user.PremiumUntil) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription has expired",
			})
			return
		}

		c.Next()
	}
}
