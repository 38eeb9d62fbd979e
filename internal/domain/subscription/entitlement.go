package subscription

import "time"

// Entitlement is the live answer to "what can this user do right now".
// It is derived from the latest active subscription on every resolution and
// never persisted.
type Entitlement struct {
	Tier           Tier
	MessageCeiling int
	Features       []Feature
	ExpiresAt      *time.Time
}

// FreeEntitlement builds the entitlement for users without an active
// subscription.
func FreeEntitlement(table *PlanTable) *Entitlement {
	plan := table.PlanFor(TierFree)
	return &Entitlement{
		Tier:           TierFree,
		MessageCeiling: plan.MessageCeiling,
	}
}

// EntitlementFor builds the entitlement granted by an active subscription.
func EntitlementFor(table *PlanTable, sub *Subscription) *Entitlement {
	plan := table.PlanFor(sub.Tier())
	expires := sub.ExpiresAt()
	return &Entitlement{
		Tier:           sub.Tier(),
		MessageCeiling: plan.MessageCeiling,
		Features:       plan.Features,
		ExpiresAt:      &expires,
	}
}

// IsPremium reports whether the entitlement grants paid-tier access.
func (e *Entitlement) IsPremium() bool {
	return e.Tier.IsPaid()
}

// HasFeature reports whether the entitlement includes a feature.
func (e *Entitlement) HasFeature(f Feature) bool {
	for _, have := range e.Features {
		if have == f {
			return true
		}
	}
	return false
}
