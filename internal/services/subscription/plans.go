package subscription

import "auditionhub_backend/internal/models"

// FREE tier quotas.
const (
	FreeAuditionsPerMonth = 10
	FreeActiveActors      = 1
)

type Plan struct {
	Tier     models.SubscriptionTier `json:"tier"`
	Name     string                  `json:"name"`
	Price    int64                   `json:"price"` // cents
	Interval string                  `json:"interval,omitempty"`
	Features []string                `json:"features"`
	PriceID  string                  `json:"-"`
}

// Plans returns the pricing table. Price ids come from configuration and are
// attached to the paid tiers only.
func Plans(monthlyPriceID, annualPriceID string) []Plan {
	return []Plan{
		{
			Tier:  models.SubscriptionTierFree,
			Name:  "Free",
			Price: 0,
			Features: []string{
				"Up to 10 auditions per month",
				"1 actor profile",
				"Basic dashboard",
			},
		},
		{
			Tier:     models.SubscriptionTierPremiumMonthly,
			Name:     "Premium Monthly",
			Price:    999,
			Interval: "month",
			Features: []string{
				"Unlimited auditions",
				"Unlimited actor profiles",
				"Email import and spreadsheet sync",
				"Analytics and insights",
			},
			PriceID: monthlyPriceID,
		},
		{
			Tier:     models.SubscriptionTierPremiumAnnual,
			Name:     "Premium Annual",
			Price:    9999,
			Interval: "year",
			Features: []string{
				"Everything in Premium Monthly",
				"Two months free",
			},
			PriceID: annualPriceID,
		},
	}
}

func FindPlan(plans []Plan, tier models.SubscriptionTier) (Plan, bool) {
	for _, p := range plans {
		if p.Tier == tier {
			return p, true
		}
	}
	return Plan{}, false
}

// StatusFromProvider maps a Stripe subscription status onto ours.
// Unknown statuses (incomplete, past_due, trialing) keep the current one.
func StatusFromProvider(status string, current models.SubscriptionStatus) models.SubscriptionStatus {
	switch status {
	case "active", "trialing":
		return models.SubscriptionStatusActive
	case "paused":
		return models.SubscriptionStatusPaused
	case "canceled", "unpaid", "incomplete_expired":
		return models.SubscriptionStatusCanceled
	}
	return current
}
