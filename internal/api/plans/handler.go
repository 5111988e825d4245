package plans

import (
	"net/http"

	"community-app/internal/domain/tiers"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Catalog *tiers.Catalog
}

// ListPlans exposes the injected tier catalog read-only. There is no
// sync step: the catalog is the single source of truth for prices.
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Listings())
}
