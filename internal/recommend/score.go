package recommend

import (
	"strings"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"
)

// Criterion weights. A product scores the sum of the criteria it satisfies.
const (
	IndustryWeight  = 3
	BandwidthWeight = 2
	TierWeight      = 2
	SizeWeight      = 1

	MaxScore = IndustryWeight + BandwidthWeight + TierWeight + SizeWeight
)

// Score rates how well a product fits the request. size is nil when the
// requester did not give an organization size.
func Score(p catalog.Product, industry string, tier catalog.Tier, bandwidthMbps int, size *int) int {
	score := 0
	if p.ServesIndustry(industry) {
		score += IndustryWeight
	}
	if bandwidthMbps >= p.MinBandwidthMbps {
		score += BandwidthWeight
	}
	if strings.EqualFold(string(p.Tier), string(tier)) {
		score += TierWeight
	}
	if size != nil && p.IdealSize != nil && p.IdealSize.Contains(*size) {
		score += SizeWeight
	}
	return score
}
