package billing

import (
	"context"
	"time"

	"community-app/internal/domain/entitlement"
	"community-app/internal/domain/tiers"
)

type updateCall struct {
	subscriptionID string
	itemID         string
	newPriceRef    string
	policy         string
}

type fakeSource struct {
	customers    []string
	customersErr error
	records      map[string][]entitlement.Record // keyed by status
	listErr      error

	checkoutURL   string
	checkoutErr   error
	checkoutCalls []CheckoutParams

	updated     entitlement.Record
	updateErr   error
	updateCalls []updateCall

	preview      InvoicePreview
	previewErr   error
	previewCalls int
}

func (f *fakeSource) ListSubscriptions(_ context.Context, _, status string) ([]entitlement.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records[status], nil
}

func (f *fakeSource) CustomersByEmail(_ context.Context, _ string) ([]string, error) {
	return f.customers, f.customersErr
}

func (f *fakeSource) CreateCheckoutSession(_ context.Context, p CheckoutParams) (string, error) {
	f.checkoutCalls = append(f.checkoutCalls, p)
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return f.checkoutURL, nil
}

func (f *fakeSource) UpdateSubscriptionItem(_ context.Context, subscriptionID, itemID, newPriceRef, prorationPolicy string) (entitlement.Record, error) {
	f.updateCalls = append(f.updateCalls, updateCall{
		subscriptionID: subscriptionID,
		itemID:         itemID,
		newPriceRef:    newPriceRef,
		policy:         prorationPolicy,
	})
	if f.updateErr != nil {
		return entitlement.Record{}, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeSource) PreviewProration(_ context.Context, _, _, _, _ string) (InvoicePreview, error) {
	f.previewCalls++
	if f.previewErr != nil {
		return InvoicePreview{}, f.previewErr
	}
	return f.preview, nil
}

func testCatalog() *tiers.Catalog {
	return tiers.NewCatalog(
		tiers.Price{Ref: "price_silver_monthly", AmountCents: 999},
		tiers.Price{Ref: "price_silver_yearly", AmountCents: 9900},
		tiers.Price{Ref: "price_gold_monthly", AmountCents: 1999},
		tiers.Price{Ref: "price_gold_yearly", AmountCents: 19900},
	)
}

func activeRecord(id, priceRef, interval string, periodEnd time.Time) entitlement.Record {
	return entitlement.Record{
		ID:               id,
		CustomerRef:      "cus_1",
		ItemID:           "si_" + id,
		PriceRef:         priceRef,
		Status:           entitlement.StatusActive,
		Interval:         interval,
		CurrentPeriodEnd: periodEnd,
	}
}
