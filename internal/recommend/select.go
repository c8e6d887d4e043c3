package recommend

import (
	"sort"
	"strings"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"
)

// MinScore is the lowest score a product may have and still be recommended.
const MinScore = 3

// Scored pairs a product with its fit score.
type Scored struct {
	Product catalog.Product
	Score   int
}

// Select scores every product not already sold, drops those under MinScore,
// orders the rest by score then name and keeps the first topN.
func Select(c *catalog.Catalog, req Request) []Scored {
	sold := soldSet(req.SoldIDs)
	tier := Classify(req.AnnualBudget)

	candidates := make([]Scored, 0, 8)
	for _, p := range c.Products() {
		if sold[strings.ToLower(p.ID)] {
			continue
		}
		s := Score(p, req.Industry, tier, req.BandwidthMbps, req.Size)
		if s < MinScore {
			continue
		}
		candidates = append(candidates, Scored{Product: p, Score: s})
	}

	sortScored(candidates)
	topN := req.limit()
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates
}

// sortScored orders by score descending, then case-insensitive name. The sort is
// stable and Catalog.Products is id-ordered, so full ties keep catalog order.
func sortScored(items []Scored) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return strings.ToLower(a.Product.Name) < strings.ToLower(b.Product.Name)
	})
}

func soldSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			out[strings.ToLower(trimmed)] = true
		}
	}
	return out
}
