package billing

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type subscriptionStatusResponse struct {
	Subscribed       bool       `json:"subscribed"`
	SubscriptionTier *string    `json:"subscription_tier"`
	PremiumTier      *string    `json:"premium_tier"`
	SubscriptionEnd  *time.Time `json:"subscription_end"`
	IsTrialing       bool       `json:"is_trialing"`
}

// CheckSubscription resolves the caller's entitlement from the payment
// provider and reconciles the persisted user record. A user whose last
// subscription lapsed is reset to free here, not left stale.
func (h *Handler) CheckSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	email := c.GetString("email")
	if userID == 0 || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	ent, err := h.Resolver.ResolveByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Persistence failure is logged, not surfaced: the resolved state
	// is still correct for display and the next pass self-heals.
	if err := h.Store.UpdateEntitlement(c.Request.Context(), userID, ent); err != nil {
		h.Log.Error().Err(err).Uint("user_id", userID).Msg("failed to persist reconciled entitlement")
	}

	resp := subscriptionStatusResponse{
		Subscribed: ent.Subscribed(),
		IsTrialing: ent.IsTrialing,
	}
	if ent.Subscribed() {
		tier := string(ent.Tier)
		resp.SubscriptionTier = &tier
		resp.PremiumTier = &tier
		resp.SubscriptionEnd = ent.ExpiresAt
	}

	c.JSON(http.StatusOK, resp)
}
