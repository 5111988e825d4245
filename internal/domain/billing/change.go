package billing

import (
	"context"
	"fmt"
	"time"

	"community-app/internal/domain/entitlement"
	"community-app/internal/domain/tiers"
)

// ChangeResult is the outcome of a tier change or its preview.
type ChangeResult struct {
	Preview   bool
	IsUpgrade bool
	Message   string // "Upgraded" or "Downgraded" on commit

	// Preview amounts, in cents. Credit is the value of unused time on
	// the old tier, Charge the remaining period on the new one.
	// AmountDue may be negative (credit carried forward).
	CreditCents    int64
	ChargeCents    int64
	AmountDueCents int64

	// Estimated marks a flat list-price fallback when the provider's
	// proration preview failed; EstimateCause carries that failure for
	// logging. Fallback previews are best-effort UX, never billing-
	// authoritative.
	Estimated     bool
	EstimateCause error

	CurrentPeriodEnd time.Time
}

// TierChangeCalculator swaps an existing subscription between tiers,
// preserving the billing period. It does not create subscriptions
// (checkout's job) and does not write the persisted entitlement; the
// next resolution pass brings that in line.
type TierChangeCalculator struct {
	source  Source
	catalog *tiers.Catalog
}

func NewTierChangeCalculator(source Source, catalog *tiers.Catalog) *TierChangeCalculator {
	return &TierChangeCalculator{source: source, catalog: catalog}
}

func (tc *TierChangeCalculator) ChangeTier(ctx context.Context, email, targetTier string, preview bool) (ChangeResult, error) {
	target, ok := tiers.ParseTier(targetTier)
	if !ok {
		return ChangeResult{}, fmt.Errorf("%w: %q", ErrInvalidTier, targetTier)
	}

	customers, err := tc.source.CustomersByEmail(ctx, email)
	if err != nil {
		return ChangeResult{}, fmt.Errorf("%w: customer lookup: %w", entitlement.ErrSourceUnavailable, err)
	}
	if len(customers) == 0 {
		return ChangeResult{}, ErrNoActiveSubscription
	}
	customerRef := customers[0]

	var records []entitlement.Record
	for _, status := range []string{entitlement.StatusActive, entitlement.StatusTrialing} {
		recs, err := tc.source.ListSubscriptions(ctx, customerRef, status)
		if err != nil {
			return ChangeResult{}, fmt.Errorf("%w: list %s subscriptions: %w", entitlement.ErrSourceUnavailable, status, err)
		}
		records = append(records, recs...)
	}

	// Same fold as the resolver, so both paths agree on which record
	// is "the" current subscription when several coexist.
	current, currentTier, ok := entitlement.Winner(tc.catalog, records)
	if !ok {
		return ChangeResult{}, ErrNoActiveSubscription
	}
	if target == currentTier {
		return ChangeResult{}, fmt.Errorf("%w: %s", ErrNoOpChange, target)
	}

	// A tier change never switches monthly<->yearly.
	_, period, ok := tc.catalog.ByPriceRef(current.PriceRef)
	if !ok {
		return ChangeResult{}, fmt.Errorf("%w: unknown current price %q", ErrNoActiveSubscription, current.PriceRef)
	}
	newPriceRef, ok := tc.catalog.PriceRef(target, period)
	if !ok {
		return ChangeResult{}, fmt.Errorf("%w: no price for %s/%s", ErrInvalidTier, target, period)
	}

	isUpgrade := target.Rank() > currentTier.Rank()

	if preview {
		return tc.previewChange(ctx, customerRef, current, currentTier, target, period, newPriceRef, isUpgrade)
	}
	return tc.commitChange(ctx, current, newPriceRef, isUpgrade)
}

func (tc *TierChangeCalculator) previewChange(ctx context.Context, customerRef string, current entitlement.Record, currentTier, target tiers.Tier, period tiers.BillingPeriod, newPriceRef string, isUpgrade bool) (ChangeResult, error) {
	pv, err := tc.source.PreviewProration(ctx, customerRef, current.ID, current.ItemID, newPriceRef)
	if err != nil {
		// Best-effort fallback: flat difference between list prices.
		// The real failure stays attached so transient outages remain
		// distinguishable from unsupported previews.
		oldAmount, _ := tc.catalog.AmountCents(currentTier, period)
		newAmount, _ := tc.catalog.AmountCents(target, period)
		diff := newAmount - oldAmount

		res := ChangeResult{
			Preview:        true,
			IsUpgrade:      isUpgrade,
			AmountDueCents: diff,
			Estimated:      true,
			EstimateCause:  fmt.Errorf("proration preview failed: %w", err),
		}
		if diff >= 0 {
			res.ChargeCents = diff
		} else {
			res.CreditCents = -diff
		}
		return res, nil
	}

	var credit, charge int64
	for _, line := range pv.Lines {
		if !line.Proration {
			continue
		}
		if line.AmountCents < 0 {
			credit += -line.AmountCents
		} else {
			charge += line.AmountCents
		}
	}

	return ChangeResult{
		Preview:        true,
		IsUpgrade:      isUpgrade,
		CreditCents:    credit,
		ChargeCents:    charge,
		AmountDueCents: pv.AmountDueCents,
	}, nil
}

func (tc *TierChangeCalculator) commitChange(ctx context.Context, current entitlement.Record, newPriceRef string, isUpgrade bool) (ChangeResult, error) {
	// Upgrades grant value now and are invoiced now; downgrades only
	// credit the next invoice, never an immediate refund.
	policy := ProrationCreateProrations
	message := "Downgraded"
	if isUpgrade {
		policy = ProrationAlwaysInvoice
		message = "Upgraded"
	}

	updated, err := tc.source.UpdateSubscriptionItem(ctx, current.ID, current.ItemID, newPriceRef, policy)
	if err != nil {
		// Includes conflicting concurrent updates rejected by the
		// provider; retryable either way.
		return ChangeResult{}, fmt.Errorf("%w: update subscription: %w", entitlement.ErrSourceUnavailable, err)
	}

	return ChangeResult{
		IsUpgrade:        isUpgrade,
		Message:          message,
		CurrentPeriodEnd: updated.CurrentPeriodEnd,
	}, nil
}
