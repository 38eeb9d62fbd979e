package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Tier
		wantErr bool
	}{
		{"free", "free", TierFree, false},
		{"monthly", "monthly", TierMonthly, false},
		{"yearly", "yearly", TierYearly, false},
		{"unknown", "lifetime", "", true},
		{"empty", "", "", true},
		{"case sensitive", "Monthly", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTier_IsPaid(t *testing.T) {
	assert.False(t, TierFree.IsPaid())
	assert.True(t, TierMonthly.IsPaid())
	assert.True(t, TierYearly.IsPaid())
}

func TestNewPlanTable_Validation(t *testing.T) {
	params := DefaultPlanTableParams()
	params.FreeMessageCeiling = 0
	_, err := NewPlanTable(params)
	assert.Error(t, err)

	params = DefaultPlanTableParams()
	params.YearlyPriceStars = -5
	_, err = NewPlanTable(params)
	assert.Error(t, err)
}

func TestPlanTable_PlanFor(t *testing.T) {
	table, err := NewPlanTable(DefaultPlanTableParams())
	require.NoError(t, err)

	free := table.PlanFor(TierFree)
	assert.Equal(t, 20, free.MessageCeiling)
	assert.Empty(t, free.Features)
	assert.Zero(t, free.PriceStars)

	monthly := table.PlanFor(TierMonthly)
	assert.Equal(t, 1000, monthly.MessageCeiling)
	assert.Equal(t, 100, monthly.PriceStars)
	assert.Equal(t, 30, monthly.DurationDays)
	assert.Contains(t, monthly.Features, FeatureVoice)
	assert.Contains(t, monthly.Features, FeatureVision)

	yearly := table.PlanFor(TierYearly)
	assert.Equal(t, 365, yearly.DurationDays)
	assert.Equal(t, 1000, yearly.PriceStars)
}

func TestPlanTable_PlanForUnknownTierFallsBackToFree(t *testing.T) {
	table, err := NewPlanTable(DefaultPlanTableParams())
	require.NoError(t, err)

	plan := table.PlanFor(Tier("corrupted"))
	assert.Equal(t, TierFree, plan.Tier, "a bad row must never grant elevated access")
}

func TestPlanTable_PaidPlans(t *testing.T) {
	table, err := NewPlanTable(DefaultPlanTableParams())
	require.NoError(t, err)

	plans := table.PaidPlans()
	require.Len(t, plans, 2)
	assert.Equal(t, TierMonthly, plans[0].Tier)
	assert.Equal(t, TierYearly, plans[1].Tier)
}
