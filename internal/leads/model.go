package leads

import (
	"context"
	"time"
)

// Event is the audit record of one generate request.
type Event struct {
	RequestID      string
	Timestamp      time.Time
	ClientName     string
	NAMName        string
	Industry       string
	Size           *int
	AnnualBudget   int64
	SoldIDs        []string
	RecommendedIDs []string
	PitchGenerated bool
}

// Recorder persists lead events. Implementations only ever append.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Nop discards events.
type Nop struct{}

// Record returns nil.
func (Nop) Record(ctx context.Context, ev Event) error {
	return ctx.Err()
}
