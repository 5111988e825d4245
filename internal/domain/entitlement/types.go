package entitlement

import (
	"context"
	"errors"
	"time"

	"community-app/internal/domain/tiers"
)

// Subscription statuses we act on. Anything else (canceled, past_due,
// incomplete...) never grants an entitlement.
const (
	StatusActive   = "active"
	StatusTrialing = "trialing"
)

// ErrSourceUnavailable marks a transient failure talking to the
// subscription source. Callers should retry; it is never a statement
// about the customer's entitlement.
var ErrSourceUnavailable = errors.New("subscription source unavailable")

// Record is one raw subscription as reported by the payment provider.
// Read-only to us; the provider is the source of truth.
type Record struct {
	ID               string
	CustomerRef      string
	ItemID           string
	PriceRef         string
	Status           string
	Interval         string // "month" or "year"
	CurrentPeriodEnd time.Time
}

// Effective is the single entitlement the platform grants a user,
// derived from however many raw records the customer holds. The zero
// value means "no paid entitlement".
type Effective struct {
	Tier          tiers.Tier
	BillingPeriod tiers.BillingPeriod
	ExpiresAt     *time.Time
	IsTrialing    bool
}

func (e Effective) Subscribed() bool {
	return e.Tier != tiers.TierNone
}

// Source is the slice of the payment provider this package needs.
type Source interface {
	ListSubscriptions(ctx context.Context, customerRef, status string) ([]Record, error)
	CustomersByEmail(ctx context.Context, email string) ([]string, error)
}

// Store persists a resolved entitlement onto the platform's user
// record. Implementations must write the whole tuple atomically and be
// idempotent: persisting the same entitlement twice is a no-op.
type Store interface {
	UpdateEntitlement(ctx context.Context, userID uint, e Effective) error
}
