package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCatalog wraps every validation failure raised while building a Catalog.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the immutable set of products and industries. Build it once with New
// and share the pointer; no method mutates it, so concurrent reads need no locking.
type Catalog struct {
	products     []Product
	productIndex map[string]int
	industries   []Industry
	industryIdx  map[string]int
}

// New validates the inputs and returns a Catalog. Products and industries are kept
// sorted by id. Industries referenced by a product but not declared are added
// with their id as display name.
func New(products []Product, industries []Industry) (*Catalog, error) {
	c := &Catalog{
		productIndex: make(map[string]int, len(products)),
		industryIdx:  make(map[string]int, len(industries)),
	}

	for _, ind := range industries {
		ind.ID = strings.TrimSpace(ind.ID)
		if ind.ID == "" {
			return nil, fmt.Errorf("%w: industry with empty id", ErrInvalidCatalog)
		}
		key := normalizeKey(ind.ID)
		if _, dup := c.industryIdx[key]; dup {
			return nil, fmt.Errorf("%w: duplicate industry id %q", ErrInvalidCatalog, ind.ID)
		}
		if strings.TrimSpace(ind.Name) == "" {
			ind.Name = ind.ID
		}
		ind.PDF = strings.TrimSpace(ind.PDF)
		c.industryIdx[key] = len(c.industries)
		c.industries = append(c.industries, ind)
	}

	for _, p := range products {
		p, err := normalizeProduct(p)
		if err != nil {
			return nil, err
		}
		key := normalizeKey(p.ID)
		if _, dup := c.productIndex[key]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		c.productIndex[key] = len(c.products)
		c.products = append(c.products, p)

		for _, ind := range p.Industries {
			if _, ok := c.industryIdx[normalizeKey(ind)]; ok {
				continue
			}
			c.industryIdx[normalizeKey(ind)] = len(c.industries)
			c.industries = append(c.industries, Industry{ID: ind, Name: ind})
		}
	}

	sort.Slice(c.products, func(i, j int) bool {
		return c.products[i].ID < c.products[j].ID
	})
	sort.Slice(c.industries, func(i, j int) bool {
		return c.industries[i].ID < c.industries[j].ID
	})
	for i, p := range c.products {
		c.productIndex[normalizeKey(p.ID)] = i
	}
	for i, ind := range c.industries {
		c.industryIdx[normalizeKey(ind.ID)] = i
	}
	return c, nil
}

func normalizeProduct(p Product) (Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return Product{}, fmt.Errorf("%w: product with empty id", ErrInvalidCatalog)
	}
	tier, err := ParseTier(string(p.Tier))
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %q: %v", ErrInvalidCatalog, p.ID, err)
	}
	p.Tier = tier
	if p.MinBandwidthMbps < 0 {
		return Product{}, fmt.Errorf("%w: product %q: negative min bandwidth", ErrInvalidCatalog, p.ID)
	}
	if r := p.IdealSize; r != nil && r.Min > r.Max {
		return Product{}, fmt.Errorf("%w: product %q: ideal size min %d > max %d", ErrInvalidCatalog, p.ID, r.Min, r.Max)
	}
	if r := p.IdealBandwidth; r != nil && r.Min > r.Max {
		return Product{}, fmt.Errorf("%w: product %q: ideal bandwidth min %d > max %d", ErrInvalidCatalog, p.ID, r.Min, r.Max)
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = p.ID
	}
	if strings.TrimSpace(p.PDF) == "" {
		p.PDF = p.ID + ".pdf"
	}
	p.TalkTrack = strings.TrimSpace(p.TalkTrack)
	p.Industries = cleanList(p.Industries)
	p.Synergies = cleanList(p.Synergies)
	if p.IdealSize != nil {
		r := *p.IdealSize
		p.IdealSize = &r
	}
	if p.IdealBandwidth != nil {
		r := *p.IdealBandwidth
		p.IdealBandwidth = &r
	}
	return p, nil
}

// Products returns copies of every product ordered by id.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.clone()
	}
	return out
}

// Product looks up a product by id, ignoring case.
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.productIndex[normalizeKey(id)]
	if !ok {
		return Product{}, false
	}
	return c.products[i].clone(), true
}

// Industries returns every industry ordered by id.
func (c *Catalog) Industries() []Industry {
	out := make([]Industry, len(c.industries))
	copy(out, c.industries)
	return out
}

// Industry looks up an industry by id, ignoring case.
func (c *Catalog) Industry(id string) (Industry, bool) {
	i, ok := c.industryIdx[normalizeKey(id)]
	if !ok {
		return Industry{}, false
	}
	return c.industries[i], true
}

// IndustryIDs lists industry ids in display order.
func (c *Catalog) IndustryIDs() []string {
	out := make([]string, 0, len(c.industries))
	for _, ind := range c.industries {
		out = append(out, ind.ID)
	}
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cleanList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || seen[normalizeKey(trimmed)] {
			continue
		}
		seen[normalizeKey(trimmed)] = true
		out = append(out, trimmed)
	}
	return out
}
