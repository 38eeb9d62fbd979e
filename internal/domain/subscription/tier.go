package subscription

import "fmt"

// Tier is the closed set of entitlement levels.
type Tier string

const (
	TierFree    Tier = "free"
	TierMonthly Tier = "monthly"
	TierYearly  Tier = "yearly"
)

var validTiers = map[Tier]bool{
	TierFree:    true,
	TierMonthly: true,
	TierYearly:  true,
}

// ParseTier parses a stored tier string. Unknown values are rejected rather
// than guessed; tier strings are written only by this package.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !validTiers[t] {
		return "", fmt.Errorf("invalid tier: %q", s)
	}
	return t, nil
}

func (t Tier) IsValid() bool {
	return validTiers[t]
}

// IsPaid reports whether the tier requires an active subscription.
func (t Tier) IsPaid() bool {
	return t == TierMonthly || t == TierYearly
}

func (t Tier) String() string {
	return string(t)
}

// Feature is a capability unlocked by a tier.
type Feature string

const (
	FeatureVoice    Feature = "voice"
	FeatureVision   Feature = "vision"
	FeaturePriority Feature = "priority"
)

// Plan describes the static limits and features of one tier.
type Plan struct {
	Tier           Tier
	Name           string
	PriceStars     int
	MessageCeiling int
	DurationDays   int
	Features       []Feature
}

// PlanTable maps tiers to plans. Built once at startup from configuration
// and treated as immutable afterwards; the entitlement resolver is the only
// component that reads it.
type PlanTable struct {
	plans map[Tier]Plan
}

// PlanTableParams carries the configurable parts of the tier table.
type PlanTableParams struct {
	FreeMessageCeiling    int
	PremiumMessageCeiling int
	MonthlyPriceStars     int
	YearlyPriceStars      int
}

// DefaultPlanTableParams mirrors the shipped defaults: 20 messages per
// window on Free, 1000 on paid tiers.
func DefaultPlanTableParams() PlanTableParams {
	return PlanTableParams{
		FreeMessageCeiling:    20,
		PremiumMessageCeiling: 1000,
		MonthlyPriceStars:     100,
		YearlyPriceStars:      1000,
	}
}

// NewPlanTable builds the tier table.
func NewPlanTable(params PlanTableParams) (*PlanTable, error) {
	if params.FreeMessageCeiling <= 0 || params.PremiumMessageCeiling <= 0 {
		return nil, fmt.Errorf("message ceilings must be positive")
	}
	if params.MonthlyPriceStars <= 0 || params.YearlyPriceStars <= 0 {
		return nil, fmt.Errorf("prices must be positive")
	}

	premiumFeatures := []Feature{FeatureVoice, FeatureVision, FeaturePriority}

	return &PlanTable{
		plans: map[Tier]Plan{
			TierFree: {
				Tier:           TierFree,
				Name:           "Free",
				MessageCeiling: params.FreeMessageCeiling,
			},
			TierMonthly: {
				Tier:           TierMonthly,
				Name:           "Premium Monthly",
				PriceStars:     params.MonthlyPriceStars,
				MessageCeiling: params.PremiumMessageCeiling,
				DurationDays:   30,
				Features:       premiumFeatures,
			},
			TierYearly: {
				Tier:           TierYearly,
				Name:           "Premium Yearly",
				PriceStars:     params.YearlyPriceStars,
				MessageCeiling: params.PremiumMessageCeiling,
				DurationDays:   365,
				Features:       premiumFeatures,
			},
		},
	}, nil
}

// PlanFor returns the plan for a tier. Unknown tiers fall back to Free so a
// corrupted row can never grant elevated access.
func (t *PlanTable) PlanFor(tier Tier) Plan {
	if plan, ok := t.plans[tier]; ok {
		return plan
	}
	return t.plans[TierFree]
}

// PaidPlans returns the purchasable plans in ascending duration order.
func (t *PlanTable) PaidPlans() []Plan {
	return []Plan{t.plans[TierMonthly], t.plans[TierYearly]}
}
