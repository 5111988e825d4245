package billing

import (
	"context"
	"fmt"

	"community-app/internal/domain/entitlement"
	"community-app/internal/domain/tiers"
)

// Yearly subscriptions start with a trial window; monthly ones do not.
const yearlyTrialDays = 7

// CheckoutRequest is one attempt to start a paid subscription.
type CheckoutRequest struct {
	UserID        uint
	Email         string
	CustomerRef   string // empty if the user has never paid before
	Tier          string
	BillingPeriod string
}

type CheckoutIntent struct {
	URL string
}

// CheckoutInitiator validates a requested subscription against the
// user's current entitlement and produces a redirect to the provider's
// checkout. It never mutates entitlement state; the webhook-triggered
// resolution pass does that after payment.
type CheckoutInitiator struct {
	source   Source
	resolver *entitlement.Resolver
	catalog  *tiers.Catalog
	appURL   string
}

func NewCheckoutInitiator(source Source, resolver *entitlement.Resolver, catalog *tiers.Catalog, appURL string) *CheckoutInitiator {
	return &CheckoutInitiator{source: source, resolver: resolver, catalog: catalog, appURL: appURL}
}

func (ci *CheckoutInitiator) InitiateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutIntent, error) {
	tier, ok := tiers.ParseTier(req.Tier)
	if !ok {
		return CheckoutIntent{}, fmt.Errorf("%w: %q", ErrInvalidTier, req.Tier)
	}
	period, ok := tiers.ParsePeriod(req.BillingPeriod)
	if !ok {
		return CheckoutIntent{}, fmt.Errorf("%w: %q", ErrInvalidBillingPeriod, req.BillingPeriod)
	}

	current, err := ci.resolver.ResolveByEmail(ctx, req.Email)
	if err != nil {
		return CheckoutIntent{}, err
	}

	// Checkout only creates subscriptions. The one change it may route
	// is a strict rank upgrade; everything else on an existing
	// entitlement goes through the tier change flow.
	if current.Subscribed() && tier.Rank() <= current.Tier.Rank() {
		return CheckoutIntent{}, fmt.Errorf("%w: current tier is %s", ErrAlreadySubscribed, current.Tier)
	}

	priceRef, ok := ci.catalog.PriceRef(tier, period)
	if !ok {
		return CheckoutIntent{}, fmt.Errorf("%w: no price for %s/%s", ErrInvalidTier, tier, period)
	}

	var trialDays int64
	if period == tiers.PeriodYearly {
		trialDays = yearlyTrialDays
	}

	url, err := ci.source.CreateCheckoutSession(ctx, CheckoutParams{
		PriceRef:    priceRef,
		CustomerRef: req.CustomerRef,
		Email:       req.Email,
		SuccessURL:  ci.appURL + "/account",
		CancelURL:   ci.appURL + "/account?canceled=1",
		TrialDays:   trialDays,
		// Metadata lets the webhook attribute the purchase without a
		// separate lookup.
		Metadata: map[string]string{
			"user_id":        fmt.Sprint(req.UserID),
			"tier":           string(tier),
			"billing_period": string(period),
		},
	})
	if err != nil {
		return CheckoutIntent{}, fmt.Errorf("%w: create checkout session: %w", entitlement.ErrSourceUnavailable, err)
	}

	return CheckoutIntent{URL: url}, nil
}
