package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"community-app/internal/domain/entitlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribedSource(priceRef, interval string, periodEnd time.Time) *fakeSource {
	return &fakeSource{
		customers: []string{"cus_1"},
		records: map[string][]entitlement.Record{
			entitlement.StatusActive: {activeRecord("sub_1", priceRef, interval, periodEnd)},
		},
	}
}

func TestChangeTierNoCustomer(t *testing.T) {
	tc := NewTierChangeCalculator(&fakeSource{}, testCatalog())

	_, err := tc.ChangeTier(context.Background(), "ghost@example.com", "gold", false)
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestChangeTierCustomerWithoutSubscription(t *testing.T) {
	tc := NewTierChangeCalculator(&fakeSource{customers: []string{"cus_1"}}, testCatalog())

	_, err := tc.ChangeTier(context.Background(), "a@example.com", "gold", false)
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestChangeTierSameTierIsNoOp(t *testing.T) {
	end := time.Now().Add(time.Hour)
	source := subscribedSource("price_gold_monthly", "month", end)
	tc := NewTierChangeCalculator(source, testCatalog())

	_, err := tc.ChangeTier(context.Background(), "a@example.com", "gold", false)
	require.ErrorIs(t, err, ErrNoOpChange)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Empty(t, source.updateCalls)
}

func TestChangeTierInvalidTarget(t *testing.T) {
	tc := NewTierChangeCalculator(&fakeSource{}, testCatalog())

	_, err := tc.ChangeTier(context.Background(), "a@example.com", "platinum", false)
	assert.ErrorIs(t, err, ErrInvalidTier)
}

func TestUpgradeCommit(t *testing.T) {
	periodEnd := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	source := subscribedSource("price_silver_monthly", "month", periodEnd)
	source.updated = activeRecord("sub_1", "price_gold_monthly", "month", periodEnd)
	tc := NewTierChangeCalculator(source, testCatalog())

	res, err := tc.ChangeTier(context.Background(), "a@example.com", "gold", false)
	require.NoError(t, err)

	assert.True(t, res.IsUpgrade)
	assert.Equal(t, "Upgraded", res.Message)
	assert.True(t, res.CurrentPeriodEnd.Equal(periodEnd))

	require.Len(t, source.updateCalls, 1)
	call := source.updateCalls[0]
	assert.Equal(t, "sub_1", call.subscriptionID)
	assert.Equal(t, "si_sub_1", call.itemID)
	assert.Equal(t, "price_gold_monthly", call.newPriceRef)
	assert.Equal(t, ProrationAlwaysInvoice, call.policy)
}

func TestDowngradeCommit(t *testing.T) {
	periodEnd := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	source := subscribedSource("price_gold_monthly", "month", periodEnd)
	source.updated = activeRecord("sub_1", "price_silver_monthly", "month", periodEnd)
	tc := NewTierChangeCalculator(source, testCatalog())

	res, err := tc.ChangeTier(context.Background(), "a@example.com", "silver", false)
	require.NoError(t, err)

	assert.False(t, res.IsUpgrade)
	assert.Equal(t, "Downgraded", res.Message)

	require.Len(t, source.updateCalls, 1)
	assert.Equal(t, ProrationCreateProrations, source.updateCalls[0].policy)
}

func TestChangePreservesBillingPeriod(t *testing.T) {
	end := time.Now().Add(time.Hour)
	source := subscribedSource("price_silver_yearly", "year", end)
	source.updated = activeRecord("sub_1", "price_gold_yearly", "year", end)
	tc := NewTierChangeCalculator(source, testCatalog())

	_, err := tc.ChangeTier(context.Background(), "a@example.com", "gold", false)
	require.NoError(t, err)

	require.Len(t, source.updateCalls, 1)
	assert.Equal(t, "price_gold_yearly", source.updateCalls[0].newPriceRef)
}

func TestPreviewNeverMutates(t *testing.T) {
	end := time.Now().Add(time.Hour)
	source := subscribedSource("price_gold_yearly", "year", end)
	source.preview = InvoicePreview{
		Lines: []InvoiceLine{
			{Description: "Unused time on Gold", AmountCents: -12000, Proration: true},
			{Description: "Remaining time on Silver", AmountCents: 7000, Proration: true},
		},
		AmountDueCents: -5000,
	}
	tc := NewTierChangeCalculator(source, testCatalog())

	// repeated previews still leave the subscription untouched
	for i := 0; i < 3; i++ {
		res, err := tc.ChangeTier(context.Background(), "a@example.com", "silver", true)
		require.NoError(t, err)
		assert.True(t, res.Preview)
		assert.False(t, res.IsUpgrade)
		assert.Equal(t, int64(12000), res.CreditCents)
	}
	assert.Equal(t, 3, source.previewCalls)
	assert.Empty(t, source.updateCalls)
}

func TestPreviewFoldsProrationLines(t *testing.T) {
	end := time.Now().Add(time.Hour)
	source := subscribedSource("price_silver_monthly", "month", end)
	source.preview = InvoicePreview{
		Lines: []InvoiceLine{
			{Description: "Unused time on Silver", AmountCents: -500, Proration: true},
			{Description: "Remaining time on Gold", AmountCents: 1400, Proration: true},
			{Description: "Gold (next cycle)", AmountCents: 1999, Proration: false},
		},
		AmountDueCents: 900,
	}
	tc := NewTierChangeCalculator(source, testCatalog())

	res, err := tc.ChangeTier(context.Background(), "a@example.com", "gold", true)
	require.NoError(t, err)

	assert.Equal(t, int64(500), res.CreditCents)
	// the non-proration renewal line stays out of the charge
	assert.Equal(t, int64(1400), res.ChargeCents)
	assert.Equal(t, int64(900), res.AmountDueCents)
	assert.False(t, res.Estimated)
	assert.Nil(t, res.EstimateCause)
}

func TestPreviewFallsBackToListPrices(t *testing.T) {
	cause := errors.New("upcoming invoice unavailable")
	end := time.Now().Add(time.Hour)

	source := subscribedSource("price_silver_monthly", "month", end)
	source.previewErr = cause
	tc := NewTierChangeCalculator(source, testCatalog())

	res, err := tc.ChangeTier(context.Background(), "a@example.com", "gold", true)
	require.NoError(t, err)

	assert.True(t, res.Estimated)
	require.NotNil(t, res.EstimateCause)
	assert.ErrorIs(t, res.EstimateCause, cause)

	// flat gold-silver monthly difference
	assert.Equal(t, int64(1000), res.ChargeCents)
	assert.Equal(t, int64(0), res.CreditCents)
	assert.Equal(t, int64(1000), res.AmountDueCents)
}

func TestPreviewFallbackDowngradeIsCredit(t *testing.T) {
	end := time.Now().Add(time.Hour)
	source := subscribedSource("price_gold_yearly", "year", end)
	source.previewErr = errors.New("boom")
	tc := NewTierChangeCalculator(source, testCatalog())

	res, err := tc.ChangeTier(context.Background(), "a@example.com", "silver", true)
	require.NoError(t, err)

	assert.True(t, res.Estimated)
	assert.Equal(t, int64(10000), res.CreditCents)
	assert.Equal(t, int64(0), res.ChargeCents)
	assert.Equal(t, int64(-10000), res.AmountDueCents)
}

func TestChangeCommitFailureIsTransient(t *testing.T) {
	end := time.Now().Add(time.Hour)
	source := subscribedSource("price_silver_monthly", "month", end)
	source.updateErr = errors.New("rate limited")
	tc := NewTierChangeCalculator(source, testCatalog())

	_, err := tc.ChangeTier(context.Background(), "a@example.com", "gold", false)
	require.Error(t, err)
	assert.Equal(t, KindTransient, KindOf(err))
}

func TestChangePicksHighestTierWhenSeveralCoexist(t *testing.T) {
	end := time.Now().Add(time.Hour)
	source := &fakeSource{
		customers: []string{"cus_1"},
		records: map[string][]entitlement.Record{
			entitlement.StatusActive: {
				activeRecord("sub_silver", "price_silver_monthly", "month", end),
				activeRecord("sub_gold", "price_gold_monthly", "month", end),
			},
		},
	}
	source.updated = activeRecord("sub_gold", "price_gold_monthly", "month", end)
	tc := NewTierChangeCalculator(source, testCatalog())

	// relative to the gold record, gold is a no-op even though a silver
	// record also exists
	_, err := tc.ChangeTier(context.Background(), "a@example.com", "gold", false)
	assert.ErrorIs(t, err, ErrNoOpChange)
}
