package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"community-app/internal/domain/tiers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	customers    []string
	customersErr error
	records      map[string][]Record // keyed by status
	listErr      error
}

func (s *stubSource) ListSubscriptions(_ context.Context, _, status string) ([]Record, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records[status], nil
}

func (s *stubSource) CustomersByEmail(_ context.Context, _ string) ([]string, error) {
	return s.customers, s.customersErr
}

func testCatalog() *tiers.Catalog {
	return tiers.NewCatalog(
		tiers.Price{Ref: "price_silver_monthly", AmountCents: 999},
		tiers.Price{Ref: "price_silver_yearly", AmountCents: 9900},
		tiers.Price{Ref: "price_gold_monthly", AmountCents: 1999},
		tiers.Price{Ref: "price_gold_yearly", AmountCents: 19900},
	)
}

func record(id, priceRef, status, interval string, periodEnd time.Time) Record {
	return Record{
		ID:               id,
		CustomerRef:      "cus_1",
		ItemID:           "si_" + id,
		PriceRef:         priceRef,
		Status:           status,
		Interval:         interval,
		CurrentPeriodEnd: periodEnd,
	}
}

func TestResolveNoRecordsIsValid(t *testing.T) {
	r := NewResolver(&stubSource{}, testCatalog())

	ent, err := r.Resolve(context.Background(), "cus_1")
	require.NoError(t, err)
	assert.False(t, ent.Subscribed())
	assert.Equal(t, tiers.TierNone, ent.Tier)
	assert.Nil(t, ent.ExpiresAt)
	assert.False(t, ent.IsTrialing)
}

func TestResolveHighestTierWins(t *testing.T) {
	end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	silver := record("sub_silver", "price_silver_monthly", StatusActive, "month", end)
	gold := record("sub_gold", "price_gold_yearly", StatusTrialing, "year", end.AddDate(1, 0, 0))

	// gold must win regardless of which status list it arrives in or
	// where it sits in the list
	cases := map[string]map[string][]Record{
		"gold trialing, silver active": {
			StatusActive:   {silver},
			StatusTrialing: {gold},
		},
		"both active, gold first": {
			StatusActive: {record("sub_gold2", "price_gold_monthly", StatusActive, "month", end), silver},
		},
		"both active, gold last": {
			StatusActive: {silver, record("sub_gold2", "price_gold_monthly", StatusActive, "month", end)},
		},
	}

	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewResolver(&stubSource{records: records}, testCatalog())
			ent, err := r.Resolve(context.Background(), "cus_1")
			require.NoError(t, err)
			assert.Equal(t, tiers.TierGold, ent.Tier)
		})
	}
}

func TestResolveTrialingFlag(t *testing.T) {
	end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	r := NewResolver(&stubSource{records: map[string][]Record{
		StatusTrialing: {record("sub_1", "price_gold_yearly", StatusTrialing, "year", end)},
	}}, testCatalog())

	ent, err := r.Resolve(context.Background(), "cus_1")
	require.NoError(t, err)
	assert.True(t, ent.IsTrialing)
	assert.Equal(t, tiers.PeriodYearly, ent.BillingPeriod)
	require.NotNil(t, ent.ExpiresAt)
	assert.True(t, ent.ExpiresAt.Equal(end))
}

func TestResolveIntervalMapping(t *testing.T) {
	end := time.Now().Add(time.Hour)
	r := NewResolver(&stubSource{records: map[string][]Record{
		StatusActive: {record("sub_1", "price_silver_monthly", StatusActive, "month", end)},
	}}, testCatalog())

	ent, err := r.Resolve(context.Background(), "cus_1")
	require.NoError(t, err)
	assert.Equal(t, tiers.PeriodMonthly, ent.BillingPeriod)
}

func TestResolveSkipsUnknownPrices(t *testing.T) {
	end := time.Now().Add(time.Hour)
	r := NewResolver(&stubSource{records: map[string][]Record{
		StatusActive: {
			record("sub_old", "price_legacy", StatusActive, "month", end),
			record("sub_1", "price_silver_monthly", StatusActive, "month", end),
		},
	}}, testCatalog())

	ent, err := r.Resolve(context.Background(), "cus_1")
	require.NoError(t, err)
	assert.Equal(t, tiers.TierSilver, ent.Tier)
}

func TestResolveSourceUnreachable(t *testing.T) {
	cause := errors.New("connection refused")
	r := NewResolver(&stubSource{listErr: cause}, testCatalog())

	_, err := r.Resolve(context.Background(), "cus_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestResolveByEmailNoCustomer(t *testing.T) {
	r := NewResolver(&stubSource{}, testCatalog())

	ent, err := r.ResolveByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, ent.Subscribed())
}

func TestResolveByEmailLookupFailure(t *testing.T) {
	r := NewResolver(&stubSource{customersErr: errors.New("timeout")}, testCatalog())

	_, err := r.ResolveByEmail(context.Background(), "a@example.com")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
