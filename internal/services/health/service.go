package health

import "github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"

// Status is the health payload.
type Status struct {
	OK         bool `json:"ok"`
	Products   int  `json:"products"`
	Industries int  `json:"industries"`
}

// Service encapsulates health-related checks.
type Service struct {
	catalog *catalog.Catalog
}

// NewService constructs a new health service. c may be nil.
func NewService(c *catalog.Catalog) *Service {
	return &Service{catalog: c}
}

// Status reports liveness and the size of the loaded catalog.
func (s *Service) Status() Status {
	if s == nil || s.catalog == nil {
		return Status{OK: true}
	}
	return Status{
		OK:         true,
		Products:   len(s.catalog.Products()),
		Industries: len(s.catalog.Industries()),
	}
}
