package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeEntitlement(t *testing.T) {
	table, err := NewPlanTable(DefaultPlanTableParams())
	require.NoError(t, err)

	ent := FreeEntitlement(table)
	assert.Equal(t, TierFree, ent.Tier)
	assert.Equal(t, 20, ent.MessageCeiling)
	assert.Nil(t, ent.ExpiresAt)
	assert.False(t, ent.IsPremium())
	assert.False(t, ent.HasFeature(FeatureVoice))
}

func TestEntitlementFor(t *testing.T) {
	table, err := NewPlanTable(DefaultPlanTableParams())
	require.NoError(t, err)

	now := time.Now()
	expiry := now.AddDate(0, 1, 0)
	sub, err := ReconstructSubscription(1, 42, TierMonthly, 100, now, expiry, true, "ref", now, now)
	require.NoError(t, err)

	ent := EntitlementFor(table, sub)
	assert.Equal(t, TierMonthly, ent.Tier)
	assert.Equal(t, 1000, ent.MessageCeiling)
	require.NotNil(t, ent.ExpiresAt)
	assert.Equal(t, expiry, *ent.ExpiresAt)
	assert.True(t, ent.IsPremium())
	assert.True(t, ent.HasFeature(FeatureVoice))
	assert.True(t, ent.HasFeature(FeatureVision))
	assert.True(t, ent.HasFeature(FeaturePriority))
	assert.False(t, ent.HasFeature(Feature("teleport")))
}
