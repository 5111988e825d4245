package admin

import (
	"net/http"
	"time"

	"community-app/internal/domain/billing"
	"community-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

type AdminUser struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Lastname         string     `json:"lastname"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	IsVerified       bool       `json:"is_verified"`
	IsPremium        bool       `json:"is_premium"`
	PremiumTier      *string    `json:"premium_tier,omitempty"`
	PremiumUntil     *time.Time `json:"premium_until,omitempty"`
	StripeCustomerID *string    `json:"stripe_customer_id,omitempty"`
}

type AdminPayment struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	Tier          string `json:"tier"`
	BillingPeriod string `json:"billing_period"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := h.DB.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range list {
		adminUsers = append(adminUsers, AdminUser{
			ID:               u.ID,
			Name:             u.Name,
			Lastname:         u.Lastname,
			Email:            u.Email,
			Role:             u.Role,
			IsVerified:       u.IsVerified,
			IsPremium:        u.IsPremium,
			PremiumTier:      u.PremiumTier,
			PremiumUntil:     u.PremiumUntil,
			StripeCustomerID: u.StripeCustomerID,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func (h *Handler) ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := h.DB.Preload("User").Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var result []AdminPayment
	for _, p := range payments {
		result = append(result, AdminPayment{
			ID:            p.ID,
			Email:         p.User.Email,
			Tier:          p.Tier,
			BillingPeriod: p.BillingPeriod,
			AmountCents:   p.AmountCents,
			Currency:      p.Currency,
			Status:        p.Status,
			CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, result)
}
