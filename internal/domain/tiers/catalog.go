package tiers

// Price is one purchasable tier/period combination. Ref is the payment
// provider's opaque price identifier; AmountCents is the list amount
// used only for best-effort preview estimates, never for billing.
type Price struct {
	Ref         string
	AmountCents int64
}

type priceKey struct {
	tier   Tier
	period BillingPeriod
}

// Catalog maps (tier, billing period) to prices in both directions.
// Built once at startup from config and injected everywhere a price
// reference is needed, so no handler carries its own copy.
type Catalog struct {
	prices map[priceKey]Price
	byRef  map[string]priceKey
}

func NewCatalog(silverMonthly, silverYearly, goldMonthly, goldYearly Price) *Catalog {
	c := &Catalog{
		prices: make(map[priceKey]Price, 4),
		byRef:  make(map[string]priceKey, 4),
	}
	c.add(TierSilver, PeriodMonthly, silverMonthly)
	c.add(TierSilver, PeriodYearly, silverYearly)
	c.add(TierGold, PeriodMonthly, goldMonthly)
	c.add(TierGold, PeriodYearly, goldYearly)
	return c
}

func (c *Catalog) add(t Tier, p BillingPeriod, price Price) {
	k := priceKey{tier: t, period: p}
	c.prices[k] = price
	c.byRef[price.Ref] = k
}

// PriceRef resolves the provider price id for a tier/period pair.
func (c *Catalog) PriceRef(t Tier, p BillingPeriod) (string, bool) {
	price, ok := c.prices[priceKey{tier: t, period: p}]
	return price.Ref, ok
}

// AmountCents returns the list amount for the pair.
func (c *Catalog) AmountCents(t Tier, p BillingPeriod) (int64, bool) {
	price, ok := c.prices[priceKey{tier: t, period: p}]
	return price.AmountCents, ok
}

// ByPriceRef is the reverse lookup: which tier/period a raw
// subscription record's price belongs to. Unknown refs return false
// (e.g. legacy prices no longer sold).
func (c *Catalog) ByPriceRef(ref string) (Tier, BillingPeriod, bool) {
	k, ok := c.byRef[ref]
	if !ok {
		return TierNone, PeriodNone, false
	}
	return k.tier, k.period, true
}

// Listing is the public shape of one catalog entry (GET /plans).
type Listing struct {
	Tier        Tier          `json:"tier"`
	Period      BillingPeriod `json:"period"`
	PriceRef    string        `json:"price_ref"`
	AmountCents int64         `json:"amount_cents"`
}

func (c *Catalog) Listings() []Listing {
	out := make([]Listing, 0, len(c.prices))
	for _, t := range []Tier{TierSilver, TierGold} {
		for _, p := range []BillingPeriod{PeriodMonthly, PeriodYearly} {
			if price, ok := c.prices[priceKey{tier: t, period: p}]; ok {
				out = append(out, Listing{
					Tier:        t,
					Period:      p,
					PriceRef:    price.Ref,
					AmountCents: price.AmountCents,
				})
			}
		}
	}
	return out
}
