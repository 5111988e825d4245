package billing

import (
	"net/http"

	"community-app/internal/domain/billing"
	"community-app/internal/domain/entitlement"
	"community-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Handler carries the billing endpoints' dependencies. Everything is
// injected so tests can swap the source and store for fakes.
type Handler struct {
	Resolver *entitlement.Resolver
	Store    entitlement.Store
	Checkout *billing.CheckoutInitiator
	Changes  *billing.TierChangeCalculator
	Users    *store.Users
	DB       *gorm.DB
	Log      zerolog.Logger
}

// respondError maps the billing error taxonomy onto HTTP statuses.
// Validation and state-conflict errors carry their specific reason;
// transient and unexpected failures return a generic message only.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch billing.KindOf(err) {
	case billing.KindValidation, billing.KindConflict:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case billing.KindTransient:
		h.Log.Warn().Err(err).Msg("billing provider unreachable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Temporary problem talking to the billing provider. Please try again."})
	default:
		h.Log.Error().Err(err).Msg("unexpected billing error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
	}
}
