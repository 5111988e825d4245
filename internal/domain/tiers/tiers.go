package tiers

import "strings"

// Tier constants (single source of truth)
type Tier string

const (
	TierNone   Tier = ""
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Rank orders tiers for upgrade/downgrade decisions. A change is an
// upgrade iff the target rank is greater than the current rank; nothing
// else in the codebase may compare tiers by name.
func (t Tier) Rank() int {
	switch t {
	case TierSilver:
		return 1
	case TierGold:
		return 2
	default:
		return 0
	}
}

func (t Tier) Valid() bool {
	return t == TierSilver || t == TierGold
}

func ParseTier(s string) (Tier, bool) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierSilver:
		return TierSilver, true
	case TierGold:
		return TierGold, true
	}
	return TierNone, false
}

type BillingPeriod string

const (
	PeriodNone    BillingPeriod = ""
	PeriodMonthly BillingPeriod = "monthly"
	PeriodYearly  BillingPeriod = "yearly"
)

func ParsePeriod(s string) (BillingPeriod, bool) {
	switch BillingPeriod(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodMonthly:
		return PeriodMonthly, true
	case PeriodYearly:
		return PeriodYearly, true
	}
	return PeriodNone, false
}

// PeriodFromInterval maps the billing interval reported by the payment
// provider ("month"/"year") onto our billing period.
func PeriodFromInterval(interval string) BillingPeriod {
	if strings.ToLower(strings.TrimSpace(interval)) == "month" {
		return PeriodMonthly
	}
	return PeriodYearly
}
