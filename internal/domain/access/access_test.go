package access

import (
	"testing"
	"time"

	"community-app/internal/domain/tiers"
	"community-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
)

func TestStateFor(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	assert.Equal(t, StateFree, StateFor(now, users.User{}))
	assert.Equal(t, StatePremium, StateFor(now, users.User{IsPremium: true, PremiumUntil: &future}))
	assert.Equal(t, StateExpired, StateFor(now, users.User{IsPremium: true, PremiumUntil: &past}))
	// no expiry recorded yet counts as premium until the next reconcile
	assert.Equal(t, StatePremium, StateFor(now, users.User{IsPremium: true}))
}

func TestCapabilitiesFor(t *testing.T) {
	assert.Equal(t, []string{"browse"}, CapabilitiesFor(StateFree, tiers.TierNone))
	assert.Equal(t, []string{"browse"}, CapabilitiesFor(StateExpired, tiers.TierGold))

	silver := CapabilitiesFor(StatePremium, tiers.TierSilver)
	assert.Contains(t, silver, "submit_tools")
	assert.NotContains(t, silver, "groups")

	gold := CapabilitiesFor(StatePremium, tiers.TierGold)
	assert.Contains(t, gold, "groups")
	assert.Contains(t, gold, "events")
}
