package billing

import (
	"context"

	"community-app/internal/domain/entitlement"
)

// Proration policies passed through to the payment provider. Upgrades
// invoice immediately; downgrades only credit the next invoice.
const (
	ProrationAlwaysInvoice    = "always_invoice"
	ProrationCreateProrations = "create_prorations"
)

// CheckoutParams describes the checkout session to create. CustomerRef
// takes precedence over Email when both are set.
type CheckoutParams struct {
	PriceRef    string
	CustomerRef string
	Email       string
	SuccessURL  string
	CancelURL   string
	TrialDays   int64 // 0 means no trial
	Metadata    map[string]string
}

type InvoiceLine struct {
	Description string
	AmountCents int64
	Proration   bool
}

type InvoicePreview struct {
	Lines          []InvoiceLine
	AmountDueCents int64
}

// Source is the full payment-provider surface the billing core needs.
// The stripe client implements it; tests substitute fakes.
type Source interface {
	entitlement.Source

	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (url string, err error)
	UpdateSubscriptionItem(ctx context.Context, subscriptionID, itemID, newPriceRef, prorationPolicy string) (entitlement.Record, error)
	PreviewProration(ctx context.Context, customerRef, subscriptionID, itemID, newPriceRef string) (InvoicePreview, error)
}
