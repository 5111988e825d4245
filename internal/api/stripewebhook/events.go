package stripewebhook

import (
	"errors"
	"fmt"
	"strconv"

	"community-app/internal/domain/billing"
	"community-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutCompleted attributes the purchase via the metadata set
// at checkout, stores the Stripe customer ref, records a payment row
// and reconciles the user's entitlement.
func (h *Handler) handleCheckoutCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	userID := userIDFromSession(session)
	if userID == 0 {
		// Not ours; acknowledge so Stripe stops retrying.
		h.Log.Warn().Str("session_id", session.ID).Msg("checkout session without user attribution")
		return nil
	}

	user, err := h.Users.ByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load user: %w", err)
	}

	if session.Customer != nil && session.Customer.ID != "" {
		if err := h.Users.SetStripeCustomerID(c.Request.Context(), user.ID, session.Customer.ID); err != nil {
			return fmt.Errorf("store customer ref: %w", err)
		}
	}

	if err := h.reconcile(c, user); err != nil {
		return err
	}

	payment := billing.Payment{
		UserID:          user.ID,
		StripeSessionID: session.ID,
		AmountCents:     session.AmountTotal,
		Currency:        string(session.Currency),
		Status:          "completed",
	}
	if session.Subscription != nil && session.Subscription.ID != "" {
		payment.StripeSubscriptionID = &session.Subscription.ID
	}
	if session.Metadata != nil {
		payment.Tier = session.Metadata["tier"]
		payment.BillingPeriod = session.Metadata["billing_period"]
	}
	// Session IDs are unique; a webhook redelivery hits the index and
	// is dropped rather than double-recorded.
	if err := h.DB.WithContext(c.Request.Context()).Create(&payment).Error; err != nil {
		h.Log.Warn().Err(err).Str("session_id", session.ID).Msg("payment row not recorded")
	}

	return nil
}

// handleSubscriptionEvent covers updates and deletions alike: both
// just trigger a fresh resolution pass for the owning user.
func (h *Handler) handleSubscriptionEvent(c *gin.Context, sub *stripe.Subscription) error {
	user, err := h.findUserForSubscription(c, sub)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	return h.reconcile(c, *user)
}

func (h *Handler) findUserForSubscription(c *gin.Context, sub *stripe.Subscription) (*users.User, error) {
	if userID := userIDFromMetadata(sub.Metadata); userID != 0 {
		user, err := h.Users.ByID(c.Request.Context(), userID)
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load user: %w", err)
		}
	}
	if sub.Customer != nil && sub.Customer.ID != "" {
		user, err := h.Users.ByStripeCustomerID(c.Request.Context(), sub.Customer.ID)
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load user by customer: %w", err)
		}
	}
	return nil, nil
}

func (h *Handler) reconcile(c *gin.Context, user users.User) error {
	ent, err := h.Resolver.ResolveByEmail(c.Request.Context(), user.Email)
	if err != nil {
		// Transient; a 500 makes Stripe redeliver the event.
		return fmt.Errorf("resolve entitlement: %w", err)
	}
	if err := h.Store.UpdateEntitlement(c.Request.Context(), user.ID, ent); err != nil {
		return fmt.Errorf("persist entitlement: %w", err)
	}
	return nil
}

func userIDFromSession(session *stripe.CheckoutSession) uint {
	if session.Metadata != nil {
		if id := parseUserID(session.Metadata["user_id"]); id != 0 {
			return id
		}
	}
	return parseUserID(session.ClientReferenceID)
}

func userIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	return parseUserID(md["user_id"])
}

func parseUserID(s string) uint {
	if s == "" {
		return 0
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid)
}
