package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateSubscription previews or commits a tier change on the caller's
// existing subscription. Commits do not write the persisted
// entitlement; the webhook or next /check-subscription pass does.
func (h *Handler) UpdateSubscription(c *gin.Context) {
	var body struct {
		TargetTier string `json:"target_tier"`
		Preview    bool   `json:"preview"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.TargetTier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid target_tier"})
		return
	}

	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	result, err := h.Changes.ChangeTier(c.Request.Context(), email, body.TargetTier, body.Preview)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if result.Preview {
		if result.Estimated {
			h.Log.Warn().Err(result.EstimateCause).Str("email", email).Msg("proration preview fell back to flat estimate")
		}
		resp := gin.H{
			"preview":    true,
			"is_upgrade": result.IsUpgrade,
			"credit":     result.CreditCents,
			"charge":     result.ChargeCents,
			"amount_due": result.AmountDueCents,
		}
		if result.Estimated {
			resp["estimated"] = true
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"is_upgrade":         result.IsUpgrade,
		"message":            result.Message,
		"current_period_end": result.CurrentPeriodEnd,
	})
}
