package users

import (
	"time"

	"community-app/internal/domain/tiers"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	// Reconciled entitlement. Always written as one tuple by the
	// entitlement store, never patched field-by-field.
	IsPremium    bool       `gorm:"column:is_premium;not null;default:false"`
	PremiumUntil *time.Time `gorm:"column:premium_until"`
	PremiumTier  *string    `gorm:"column:premium_tier"`

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tier returns the reconciled premium tier, TierNone when free.
func (u *User) Tier() tiers.Tier {
	if !u.IsPremium || u.PremiumTier == nil {
		return tiers.TierNone
	}
	t, ok := tiers.ParseTier(*u.PremiumTier)
	if !ok {
		return tiers.TierNone
	}
	return t
}
