package tiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog(
		Price{Ref: "price_silver_monthly", AmountCents: 999},
		Price{Ref: "price_silver_yearly", AmountCents: 9900},
		Price{Ref: "price_gold_monthly", AmountCents: 1999},
		Price{Ref: "price_gold_yearly", AmountCents: 19900},
	)
}

func TestTierOrdering(t *testing.T) {
	assert.Greater(t, TierGold.Rank(), TierSilver.Rank())
	assert.Greater(t, TierSilver.Rank(), TierNone.Rank())
}

func TestParseTier(t *testing.T) {
	for input, want := range map[string]Tier{
		"silver": TierSilver,
		"GOLD":   TierGold,
		" gold ": TierGold,
	} {
		got, ok := ParseTier(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "platinum", "none"} {
		_, ok := ParseTier(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestPeriodFromInterval(t *testing.T) {
	assert.Equal(t, PeriodMonthly, PeriodFromInterval("month"))
	assert.Equal(t, PeriodYearly, PeriodFromInterval("year"))
	// anything that is not a month is treated as yearly
	assert.Equal(t, PeriodYearly, PeriodFromInterval("week"))
}

func TestCatalogLookupBothDirections(t *testing.T) {
	c := testCatalog()

	ref, ok := c.PriceRef(TierGold, PeriodMonthly)
	require.True(t, ok)
	assert.Equal(t, "price_gold_monthly", ref)

	tier, period, ok := c.ByPriceRef("price_silver_yearly")
	require.True(t, ok)
	assert.Equal(t, TierSilver, tier)
	assert.Equal(t, PeriodYearly, period)

	_, _, ok = c.ByPriceRef("price_legacy_plan")
	assert.False(t, ok)

	amount, ok := c.AmountCents(TierGold, PeriodYearly)
	require.True(t, ok)
	assert.Equal(t, int64(19900), amount)
}

func TestCatalogListings(t *testing.T) {
	listings := testCatalog().Listings()
	require.Len(t, listings, 4)
	// silver entries sort before gold
	assert.Equal(t, TierSilver, listings[0].Tier)
	assert.Equal(t, TierGold, listings[3].Tier)
}
