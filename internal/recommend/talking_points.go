package recommend

import (
	"fmt"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"
)

// TalkingPoints explains a recommendation. Clauses whose data is missing are left out:
// talk track, organization size fit, bandwidth fit, industry traction, in that order.
// industryName is used in the traction sentence and falls back to industry when empty.
func TalkingPoints(p catalog.Product, industry, industryName string, size *int, bandwidthMbps int) []string {
	points := make([]string, 0, 4)

	if p.TalkTrack != "" {
		points = append(points, p.TalkTrack)
	}

	if size != nil && p.IdealSize != nil {
		r := *p.IdealSize
		if r.Contains(*size) {
			points = append(points, fmt.Sprintf(
				"Built for organizations of %d-%d employees; at %d employees the client is in range.",
				r.Min, r.Max, *size))
		} else {
			points = append(points, fmt.Sprintf(
				"Primary fit is %d-%d employees; at %d employees the client is outside the primary range but compatible.",
				r.Min, r.Max, *size))
		}
	}

	if p.IdealBandwidth != nil {
		r := *p.IdealBandwidth
		if r.Contains(bandwidthMbps) {
			points = append(points, fmt.Sprintf(
				"Designed for %d-%d Mbps links; the requested %d Mbps is in range.",
				r.Min, r.Max, bandwidthMbps))
		} else {
			points = append(points, fmt.Sprintf(
				"Primary fit is %d-%d Mbps links; the requested %d Mbps is outside the primary range but compatible.",
				r.Min, r.Max, bandwidthMbps))
		}
	}

	if p.ServesIndustry(industry) {
		name := industryName
		if name == "" {
			name = industry
		}
		points = append(points, fmt.Sprintf("Proven traction with %s clients.", name))
	}

	return points
}
