package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Tier is the budget band a product targets.
type Tier string

const (
	TierSMB        Tier = "smb"
	TierMid        Tier = "mid"
	TierEnterprise Tier = "enterprise"
)

// Tiers lists the tier labels in ordinal order.
func Tiers() []Tier {
	return []Tier{TierSMB, TierMid, TierEnterprise}
}

// ParseTier maps a label to a Tier, ignoring case and surrounding space.
func ParseTier(raw string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierSMB:
		return TierSMB, nil
	case TierMid:
		return TierMid, nil
	case TierEnterprise:
		return TierEnterprise, nil
	default:
		return "", fmt.Errorf("unknown tier %q", raw)
	}
}

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies within the inclusive bounds.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Product is a sellable item and the deck that pitches it.
type Product struct {
	ID               string
	Name             string
	Industries       []string
	MinBandwidthMbps int
	Tier             Tier
	// Synergies lists products commonly sold alongside this one. Informational only.
	Synergies      []string
	IdealSize      *Range
	IdealBandwidth *Range
	TalkTrack      string
	PDF            string
}

// clone returns p with its own copies of the slice and range fields.
func (p Product) clone() Product {
	p.Industries = slices.Clone(p.Industries)
	p.Synergies = slices.Clone(p.Synergies)
	if p.IdealSize != nil {
		r := *p.IdealSize
		p.IdealSize = &r
	}
	if p.IdealBandwidth != nil {
		r := *p.IdealBandwidth
		p.IdealBandwidth = &r
	}
	return p
}

// ServesIndustry reports whether industry is one of the product's industries, ignoring case.
func (p Product) ServesIndustry(industry string) bool {
	want := strings.TrimSpace(industry)
	if want == "" {
		return false
	}
	for _, ind := range p.Industries {
		if strings.EqualFold(strings.TrimSpace(ind), want) {
			return true
		}
	}
	return false
}

// Industry describes a vertical and its optional overview deck.
type Industry struct {
	ID   string
	Name string
	PDF  string
}
