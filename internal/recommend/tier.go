package recommend

import "github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"

// Budget thresholds, in the same currency unit as the request (INR).
const (
	MidTierFloor        = 2_000_000
	EnterpriseTierFloor = 10_000_000
)

// Classify maps an annual budget to a tier. Each floor belongs to the higher tier.
func Classify(annualBudget int64) catalog.Tier {
	switch {
	case annualBudget >= EnterpriseTierFloor:
		return catalog.TierEnterprise
	case annualBudget >= MidTierFloor:
		return catalog.TierMid
	default:
		return catalog.TierSMB
	}
}
