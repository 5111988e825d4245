package access

import (
	"time"

	"community-app/internal/domain/tiers"
	"community-app/internal/domain/users"
)

// Effective access for UI/product: free|premium|expired
type State string

const (
	StateFree    State = "free"
	StatePremium State = "premium"
	StateExpired State = "expired"
)

// StateFor interprets the reconciled entitlement fields only; it never
// talks to the payment provider.
func StateFor(now time.Time, u users.User) State {
	if !u.IsPremium {
		return StateFree
	}
	if u.PremiumUntil != nil && now.After(*u.PremiumUntil) {
		return StateExpired
	}
	return StatePremium
}

func CapabilitiesFor(state State, tier tiers.Tier) []string {
	if state != StatePremium {
		return []string{"browse"}
	}
	switch tier {
	case tiers.TierSilver:
		return []string{"browse", "submit_tools", "messaging"}
	case tiers.TierGold:
		return []string{"browse", "submit_tools", "messaging", "groups", "events"}
	default:
		return []string{"browse"}
	}
}
