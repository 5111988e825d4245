package billing

import (
	"time"

	"community-app/internal/domain/users"
)

// Payment is one completed checkout, recorded by the webhook handler.
type Payment struct {
	ID                   uint `gorm:"primaryKey"`
	UserID               uint
	User                 users.User
	Tier                 string
	BillingPeriod        string
	StripeSessionID      string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	AmountCents          int64
	Currency             string
	Status               string
	InvoiceID            *string
	ReceiptURL           *string
	CreatedAt            time.Time
}
