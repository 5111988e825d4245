package billing

import (
	"net/http"

	"community-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// CreateCheckout validates the requested tier/period against the
// caller's current entitlement and returns a checkout redirect URL.
func (h *Handler) CreateCheckout(c *gin.Context) {
	var body struct {
		Tier          string `json:"tier"`
		BillingPeriod string `json:"billing_period"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Tier == "" || body.BillingPeriod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid tier/billing_period"})
		return
	}

	userID := c.GetUint("user_id")
	email := c.GetString("email")
	if userID == 0 || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	// Reuse the known customer ref when the user has paid before, so
	// Stripe does not mint a duplicate customer.
	customerRef := ""
	if user, err := h.Users.ByID(c.Request.Context(), userID); err == nil {
		if user.StripeCustomerID != nil {
			customerRef = *user.StripeCustomerID
		}
	}

	intent, err := h.Checkout.InitiateCheckout(c.Request.Context(), billing.CheckoutRequest{
		UserID:        userID,
		Email:         email,
		CustomerRef:   customerRef,
		Tier:          body.Tier,
		BillingPeriod: body.BillingPeriod,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": intent.URL})
}
