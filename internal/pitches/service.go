package pitches

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/leads"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitchdeck"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/recommend"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/metrics"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/object"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/telemetry"
)

// Assembler merges pitch decks.
type Assembler interface {
	Assemble(ctx context.Context, w io.Writer, req pitchdeck.Request) (pitchdeck.Result, error)
}

// Requester identifies who asked for a pitch. Only the lead log uses it.
type Requester struct {
	RequestID  string
	ClientName string
	NAMName    string
}

// Service orchestrates recommendation, assembly and lead recording.
type Service struct {
	Recommender *recommend.Service
	Assembler   Assembler
	Decks       pitchdeck.Source
	Leads       leads.Recorder
	Skeleton    string
	TempDir     string
	Now         func() time.Time
}

// Pitch is an assembled document on disk. Close removes it.
type Pitch struct {
	Path           string
	Recommendation recommend.Result
	Assembly       pitchdeck.Result
}

// Close deletes the pitch file.
func (p *Pitch) Close() error {
	if p == nil || p.Path == "" {
		return nil
	}
	err := os.Remove(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Catalog returns the catalog snapshot.
func (s *Service) Catalog() recommend.Snapshot {
	return s.Recommender.Snapshot()
}

// Recommend runs the recommendation engine and records the outcome metric.
func (s *Service) Recommend(req recommend.Request) (recommend.Result, error) {
	res, err := s.Recommender.Recommend(req)
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		metrics.IncRecommendation("invalid")
	case errors.Is(err, recommend.ErrNoSegment):
		metrics.IncRecommendation("no_segment")
	case err != nil:
		metrics.IncRecommendation("error")
	case len(res.Recommended) == 0:
		metrics.IncRecommendation("empty")
	default:
		metrics.IncRecommendation("ok")
	}
	return res, err
}

// Generate recommends products and assembles their decks into a temp file.
// The caller must Close the returned Pitch. On error no file is left behind.
func (s *Service) Generate(ctx context.Context, req recommend.Request, who Requester) (*Pitch, error) {
	pitch, err := s.generate(ctx, req, who)
	metrics.IncPitch(pitchOutcome(err))
	return pitch, err
}

func (s *Service) generate(ctx context.Context, req recommend.Request, who Requester) (*Pitch, error) {
	rec, err := s.Recommend(req)
	if err != nil {
		return nil, err
	}
	if len(rec.Recommended) == 0 {
		return nil, fmt.Errorf("%w: industry=%s tier=%s", ErrNoRecommendations, rec.Industry.ID, rec.Tier)
	}

	f, err := os.CreateTemp(s.TempDir, "pitch-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create pitch file: %w", err)
	}
	pitch := &Pitch{Path: f.Name(), Recommendation: rec}
	keep := false
	defer func() {
		if !keep {
			_ = pitch.Close()
		}
	}()

	assembly, err := s.Assembler.Assemble(ctx, f, deckRequest(s.Skeleton, rec))
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("write pitch file: %w", closeErr)
	}
	if err != nil {
		return nil, err
	}
	pitch.Assembly = assembly
	keep = true

	s.recordLead(ctx, req, who, rec)
	return pitch, nil
}

func deckRequest(skeleton string, rec recommend.Result) pitchdeck.Request {
	out := pitchdeck.Request{
		Skeleton: skeleton,
		Products: make([]pitchdeck.Deck, 0, len(rec.Recommended)),
	}
	if rec.Industry.PDF != "" {
		out.Industry = &pitchdeck.Deck{ID: rec.Industry.ID, PDF: rec.Industry.PDF}
	}
	for _, r := range rec.Recommended {
		out.Products = append(out.Products, pitchdeck.Deck{ID: r.ProductID, PDF: r.PDF})
	}
	return out
}

// recordLead logs and swallows recorder failures; the pitch has already been built.
func (s *Service) recordLead(ctx context.Context, req recommend.Request, who Requester, rec recommend.Result) {
	if s.Leads == nil {
		return
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ev := leads.Event{
		RequestID:      who.RequestID,
		Timestamp:      now(),
		ClientName:     who.ClientName,
		NAMName:        who.NAMName,
		Industry:       req.Industry,
		Size:           req.Size,
		AnnualBudget:   req.AnnualBudget,
		SoldIDs:        req.SoldIDs,
		RecommendedIDs: rec.ProductIDs(),
		PitchGenerated: true,
	}
	if err := s.Leads.Record(ctx, ev); err != nil {
		telemetry.Error("lead.record_failed", map[string]any{
			"request_id": who.RequestID,
			"industry":   req.Industry,
			"error":      err,
		})
	}
}

// ProductDeck returns the product and the bytes of its deck.
func (s *Service) ProductDeck(ctx context.Context, id string) (catalog.Product, []byte, error) {
	p, err := s.Recommender.Product(id)
	if err != nil {
		return catalog.Product{}, nil, err
	}
	data, err := s.Decks.Fetch(ctx, p.PDF)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return catalog.Product{}, nil, fmt.Errorf("%w: %s: %v", ErrDeckNotFound, p.ID, err)
		}
		return catalog.Product{}, nil, err
	}
	return p, data, nil
}

func pitchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, recommend.ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, recommend.ErrNoSegment):
		return "no_segment"
	case errors.Is(err, ErrNoRecommendations):
		return "empty"
	case errors.Is(err, pitchdeck.ErrNoProductDecks):
		return "missing_decks"
	case errors.Is(err, pitchdeck.ErrConfiguration):
		return "skeleton_invalid"
	default:
		return "error"
	}
}
