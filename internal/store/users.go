package store

import (
	"context"

	"community-app/internal/domain/entitlement"
	"community-app/internal/domain/users"

	"gorm.io/gorm"
)

// Users is the gorm-backed user store. It implements
// entitlement.Store: the reconciliation writer.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// UpdateEntitlement overwrites the user's entitlement tuple wholesale
// in a single UPDATE. All three columns always travel together so two
// racing reconciliation passes can never leave a half-old/half-new
// record; repeating the same entitlement changes nothing.
func (s *Users) UpdateEntitlement(ctx context.Context, userID uint, e entitlement.Effective) error {
	var tier *string
	if e.Subscribed() {
		t := string(e.Tier)
		tier = &t
	}

	return s.db.WithContext(ctx).
		Model(&users.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_premium":    e.Subscribed(),
			"premium_until": e.ExpiresAt,
			"premium_tier":  tier,
		}).Error
}

func (s *Users) ByID(ctx context.Context, id uint) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return u, err
}

func (s *Users) ByEmail(ctx context.Context, email string) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return u, err
}

func (s *Users) ByStripeCustomerID(ctx context.Context, customerID string) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where("stripe_customer_id = ?", customerID).First(&u).Error
	return u, err
}

func (s *Users) SetStripeCustomerID(ctx context.Context, userID uint, customerID string) error {
	return s.db.WithContext(ctx).
		Model(&users.User{}).
		Where("id = ?", userID).
		Update("stripe_customer_id", customerID).Error
}
