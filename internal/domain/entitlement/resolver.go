package entitlement

import (
	"context"
	"fmt"

	"community-app/internal/domain/tiers"
)

// Resolver turns the raw subscription records of one customer into the
// single entitlement the platform grants. Read-only; persistence is the
// caller's job via Store.
type Resolver struct {
	source  Source
	catalog *tiers.Catalog
}

func NewResolver(source Source, catalog *tiers.Catalog) *Resolver {
	return &Resolver{source: source, catalog: catalog}
}

// Resolve fetches all active and trialing records for the customer and
// folds them to the highest-ranked tier. No qualifying records is a
// valid result (zero Effective), not an error.
func (r *Resolver) Resolve(ctx context.Context, customerRef string) (Effective, error) {
	var candidates []Record
	for _, status := range []string{StatusActive, StatusTrialing} {
		recs, err := r.source.ListSubscriptions(ctx, customerRef, status)
		if err != nil {
			return Effective{}, fmt.Errorf("%w: list %s subscriptions: %w", ErrSourceUnavailable, status, err)
		}
		candidates = append(candidates, recs...)
	}

	winner, tier, ok := Winner(r.catalog, candidates)
	if !ok {
		return Effective{}, nil
	}

	expires := winner.CurrentPeriodEnd
	return Effective{
		Tier:          tier,
		BillingPeriod: tiers.PeriodFromInterval(winner.Interval),
		ExpiresAt:     &expires,
		IsTrialing:    winner.Status == StatusTrialing,
	}, nil
}

// ResolveByEmail looks up the customer by email first. A user with no
// customer record simply has no entitlement.
func (r *Resolver) ResolveByEmail(ctx context.Context, email string) (Effective, error) {
	customers, err := r.source.CustomersByEmail(ctx, email)
	if err != nil {
		return Effective{}, fmt.Errorf("%w: customer lookup: %w", ErrSourceUnavailable, err)
	}
	if len(customers) == 0 {
		return Effective{}, nil
	}
	// Email is assumed to map to one customer; take the first if not.
	return r.Resolve(ctx, customers[0])
}

// Winner picks the record granting the highest-ranked tier. The fold is
// deterministic regardless of input order: a higher rank always wins,
// and on equal rank the earlier record is kept. Records whose price is
// unknown to the catalog are skipped. A customer should not hold two
// paid subscriptions at once, but we must not assume that.
func Winner(catalog *tiers.Catalog, records []Record) (Record, tiers.Tier, bool) {
	var (
		winner Record
		best   tiers.Tier
		found  bool
	)
	for _, rec := range records {
		tier, _, ok := catalog.ByPriceRef(rec.PriceRef)
		if !ok {
			continue
		}
		if !found || tier.Rank() > best.Rank() {
			winner = rec
			best = tier
			found = true
		}
	}
	return winner, best, found
}
