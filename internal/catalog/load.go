package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Load reads a catalog file. YAML and JSON are both accepted.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog bytes and validates them.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}

	products := make([]Product, 0, len(doc.Products))
	for _, rec := range doc.Products {
		p, err := rec.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	industries := make([]Industry, 0, len(doc.Industries))
	for _, rec := range doc.Industries {
		industries = append(industries, Industry{ID: rec.ID, Name: rec.Name, PDF: rec.PDF})
	}
	return New(products, industries)
}

type document struct {
	Products   productList     `yaml:"products"`
	Industries []industryEntry `yaml:"industries"`
}

type industryEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	PDF  string `yaml:"pdf"`
}

type rangeEntry struct {
	Min *int `yaml:"min"`
	Max *int `yaml:"max"`
}

type productEntry struct {
	ID               string      `yaml:"id"`
	Name             string      `yaml:"name"`
	Industries       []string    `yaml:"industries"`
	MinBandwidthMbps int         `yaml:"min_bandwidth_mbps"`
	Tier             string      `yaml:"tier"`
	Synergies        []string    `yaml:"synergies"`
	IdealSize        *rangeEntry `yaml:"ideal_size"`
	IdealBandwidth   *rangeEntry `yaml:"ideal_bandwidth"`
	TalkTrack        string      `yaml:"talk_track"`
	PDF              string      `yaml:"pdf"`
}

func (e productEntry) toProduct() (Product, error) {
	size, err := e.IdealSize.toRange()
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %q: ideal_size: %v", ErrInvalidCatalog, e.ID, err)
	}
	bw, err := e.IdealBandwidth.toRange()
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %q: ideal_bandwidth: %v", ErrInvalidCatalog, e.ID, err)
	}
	return Product{
		ID:               e.ID,
		Name:             e.Name,
		Industries:       e.Industries,
		MinBandwidthMbps: e.MinBandwidthMbps,
		Tier:             Tier(e.Tier),
		Synergies:        e.Synergies,
		IdealSize:        size,
		IdealBandwidth:   bw,
		TalkTrack:        e.TalkTrack,
		PDF:              e.PDF,
	}, nil
}

func (e *rangeEntry) toRange() (*Range, error) {
	if e == nil || (e.Min == nil && e.Max == nil) {
		return nil, nil
	}
	if e.Min == nil || e.Max == nil {
		return nil, fmt.Errorf("both min and max are required")
	}
	return &Range{Min: *e.Min, Max: *e.Max}, nil
}

// productList accepts either a sequence of products or a mapping keyed by
// product id (the layout of the legacy schema.json).
type productList []productEntry

func (l *productList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var items []productEntry
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	case yaml.MappingNode:
		var byID map[string]productEntry
		if err := value.Decode(&byID); err != nil {
			return err
		}
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		items := make([]productEntry, 0, len(ids))
		for _, id := range ids {
			entry := byID[id]
			if entry.ID == "" {
				entry.ID = id
			}
			items = append(items, entry)
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("products must be a list or a mapping")
	}
}
