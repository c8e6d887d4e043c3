package recommend

import (
	"fmt"
	"strings"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"
)

const (
	DefaultTopN = 3
	MaxTopN     = 10
)

// Request is a single recommendation query. Size is nil when not supplied.
type Request struct {
	Industry      string
	AnnualBudget  int64
	BandwidthMbps int
	Size          *int
	SoldIDs       []string
	// TopN bounds the result length; zero means DefaultTopN.
	TopN int
}

// Validate checks the request bounds.
func (r Request) Validate() error {
	switch {
	case strings.TrimSpace(r.Industry) == "":
		return fmt.Errorf("%w: industry is required", ErrInvalidRequest)
	case r.AnnualBudget < 0:
		return fmt.Errorf("%w: annual budget must not be negative", ErrInvalidRequest)
	case r.BandwidthMbps < 1:
		return fmt.Errorf("%w: bandwidth must be at least 1 Mbps", ErrInvalidRequest)
	case r.Size != nil && *r.Size < 0:
		return fmt.Errorf("%w: size must not be negative", ErrInvalidRequest)
	case r.TopN < 0 || r.TopN > MaxTopN:
		return fmt.Errorf("%w: top_n must be between 1 and %d", ErrInvalidRequest, MaxTopN)
	}
	return nil
}

func (r Request) limit() int {
	if r.TopN <= 0 {
		return DefaultTopN
	}
	if r.TopN > MaxTopN {
		return MaxTopN
	}
	return r.TopN
}

// Recommendation is one ranked product with its explanation.
type Recommendation struct {
	ProductID     string
	Name          string
	Score         int
	TalkingPoints []string
	PDF           string
}

// Result is the ordered outcome of Recommend. Order is the deck order used for assembly.
type Result struct {
	Industry    catalog.Industry
	Tier        catalog.Tier
	Recommended []Recommendation
}

// ProductIDs lists the recommended ids in order.
func (r Result) ProductIDs() []string {
	out := make([]string, 0, len(r.Recommended))
	for _, rec := range r.Recommended {
		out = append(out, rec.ProductID)
	}
	return out
}

// Service answers recommendation queries against an immutable catalog.
type Service struct {
	Catalog *catalog.Catalog
}

// NewService constructs a Service.
func NewService(c *catalog.Catalog) *Service {
	return &Service{Catalog: c}
}

// Recommend validates the request, checks that the catalog has a segment for the
// industry and budget tier, and returns the ranked selection. An empty
// Recommended slice with a nil error means nothing cleared MinScore.
func (s *Service) Recommend(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	tier := Classify(req.AnnualBudget)
	industry, ok := s.Catalog.Industry(req.Industry)
	if !ok || !hasSegment(s.Catalog, industry.ID, tier) {
		return Result{}, fmt.Errorf("%w: industry=%q tier=%s", ErrNoSegment, req.Industry, tier)
	}

	selected := Select(s.Catalog, req)
	out := Result{
		Industry:    industry,
		Tier:        tier,
		Recommended: make([]Recommendation, 0, len(selected)),
	}
	for _, sc := range selected {
		out.Recommended = append(out.Recommended, Recommendation{
			ProductID:     sc.Product.ID,
			Name:          sc.Product.Name,
			Score:         sc.Score,
			TalkingPoints: TalkingPoints(sc.Product, req.Industry, industry.Name, req.Size, req.BandwidthMbps),
			PDF:           sc.Product.PDF,
		})
	}
	return out, nil
}

// Product returns the catalog entry for id.
func (s *Service) Product(id string) (catalog.Product, error) {
	p, ok := s.Catalog.Product(id)
	if !ok {
		return catalog.Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, id)
	}
	return p, nil
}

// hasSegment reports whether any product serves the industry or targets the tier.
func hasSegment(c *catalog.Catalog, industry string, tier catalog.Tier) bool {
	for _, p := range c.Products() {
		if p.ServesIndustry(industry) || p.Tier == tier {
			return true
		}
	}
	return false
}

// ProductRef is the id and display name of a product.
type ProductRef struct {
	ID   string
	Name string
}

// Snapshot is the read-only view used to populate selection UIs.
type Snapshot struct {
	Products    []ProductRef
	Industries  []string
	BudgetTiers []string
}

// Snapshot lists products, industries and budget tier labels.
func (s *Service) Snapshot() Snapshot {
	products := s.Catalog.Products()
	refs := make([]ProductRef, 0, len(products))
	for _, p := range products {
		refs = append(refs, ProductRef{ID: p.ID, Name: p.Name})
	}
	tiers := make([]string, 0, 3)
	for _, t := range catalog.Tiers() {
		tiers = append(tiers, string(t))
	}
	return Snapshot{
		Products:    refs,
		Industries:  s.Catalog.IndustryIDs(),
		BudgetTiers: tiers,
	}
}
