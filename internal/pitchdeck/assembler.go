package pitchdeck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/metrics"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/object"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/telemetry"
)

const (
	// MinSkeletonPages is the smallest skeleton that yields distinct head and tail ranges.
	MinSkeletonPages = 4
	// EdgePages is the number of skeleton pages placed before and after the body.
	EdgePages = 2
)

// Deck names a document in the deck source.
type Deck struct {
	ID  string
	PDF string
}

// Request lists the documents of one pitch. Industry is optional; Products is
// in selection order, which is also deck order.
type Request struct {
	Skeleton string
	Industry *Deck
	Products []Deck
}

// Result describes an assembled document.
type Result struct {
	Pages            int
	IndustryIncluded bool
	Included         []string
	Skipped          []string
}

// Assembler merges the skeleton, the optional industry deck and the product decks.
type Assembler struct {
	Codec  Codec
	Source Source
}

// NewAssembler constructs an Assembler.
func NewAssembler(codec Codec, source Source) *Assembler {
	return &Assembler{Codec: codec, Source: source}
}

type loaded struct {
	deck  Deck
	data  []byte
	pages int
}

// Assemble writes the merged pitch to w. The skeleton's first and last two pages
// wrap the industry deck and each product deck in order. Decks that cannot be
// resolved are skipped; if no product deck resolves the assembly fails with
// ErrNoProductDecks. A missing or short skeleton fails with ErrConfiguration.
func (a *Assembler) Assemble(ctx context.Context, w io.Writer, req Request) (Result, error) {
	start := time.Now()

	skeleton, err := a.loadSkeleton(ctx, req.Skeleton)
	if err != nil {
		return Result{}, err
	}

	var res Result
	var body []Part

	if req.Industry != nil && req.Industry.PDF != "" {
		ind, ok, err := a.load(ctx, "industry", *req.Industry)
		if err != nil {
			return Result{}, err
		}
		if ok {
			body = append(body, Part{Name: ind.deck.PDF, Data: ind.data})
			res.Pages += ind.pages
			res.IndustryIncluded = true
		}
	}

	for _, d := range req.Products {
		p, ok, err := a.load(ctx, "product", d)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			res.Skipped = append(res.Skipped, d.ID)
			continue
		}
		body = append(body, Part{Name: p.deck.PDF, Data: p.data})
		res.Pages += p.pages
		res.Included = append(res.Included, d.ID)
	}
	if len(res.Included) == 0 {
		return Result{}, fmt.Errorf("%w: %d selected", ErrNoProductDecks, len(req.Products))
	}

	head, tail := planRange(skeleton.pages)
	parts := make([]Part, 0, len(body)+2)
	parts = append(parts, Part{Name: req.Skeleton, Data: skeleton.data, From: head[0], To: head[1]})
	parts = append(parts, body...)
	parts = append(parts, Part{Name: req.Skeleton, Data: skeleton.data, From: tail[0], To: tail[1]})
	res.Pages += (head[1] - head[0] + 1) + (tail[1] - tail[0] + 1)

	if err := a.Codec.Merge(w, parts); err != nil {
		return Result{}, fmt.Errorf("assemble pitch: %w", err)
	}

	metrics.ObserveAssembly(time.Since(start).Seconds(), res.Pages)
	return res, nil
}

// CheckSkeleton verifies that the skeleton resolves and has at least
// MinSkeletonPages pages. It returns the page count.
func (a *Assembler) CheckSkeleton(ctx context.Context, name string) (int, error) {
	s, err := a.loadSkeleton(ctx, name)
	if err != nil {
		return 0, err
	}
	return s.pages, nil
}

func (a *Assembler) loadSkeleton(ctx context.Context, name string) (loaded, error) {
	data, err := a.Source.Fetch(ctx, name)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return loaded{}, fmt.Errorf("%w: %s", ErrSkeletonMissing, name)
		}
		return loaded{}, fmt.Errorf("load skeleton %s: %w", name, err)
	}
	pages, err := a.Codec.PageCount(data)
	if err != nil {
		return loaded{}, fmt.Errorf("%w: %s: %v", ErrSkeletonMissing, name, err)
	}
	if pages < MinSkeletonPages {
		return loaded{}, fmt.Errorf("%w: %s has %d pages, need %d", ErrSkeletonTooShort, name, pages, MinSkeletonPages)
	}
	return loaded{deck: Deck{PDF: name}, data: data, pages: pages}, nil
}

// load returns ok=false for decks that are absent or unreadable. Other storage
// errors are returned.
func (a *Assembler) load(ctx context.Context, kind string, d Deck) (loaded, bool, error) {
	data, err := a.Source.Fetch(ctx, d.PDF)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			a.skip(kind, d, err)
			return loaded{}, false, nil
		}
		return loaded{}, false, fmt.Errorf("load %s deck %s: %w", kind, d.PDF, err)
	}
	pages, err := a.Codec.PageCount(data)
	if err != nil {
		a.skip(kind, d, err)
		return loaded{}, false, nil
	}
	return loaded{deck: d, data: data, pages: pages}, true, nil
}

func (a *Assembler) skip(kind string, d Deck, err error) {
	metrics.IncDeckSkipped(kind)
	telemetry.Warn("pitchdeck.deck_skipped", map[string]any{
		"kind":  kind,
		"id":    d.ID,
		"pdf":   d.PDF,
		"error": err,
	})
}

// planRange returns the inclusive head and tail page ranges of a skeleton with
// total pages. Each range spans min(EdgePages, total) pages.
func planRange(total int) (head, tail [2]int) {
	n := min(EdgePages, total)
	if n <= 0 {
		return [2]int{}, [2]int{}
	}
	head = [2]int{1, n}
	tail = [2]int{total - n + 1, total}
	return head, tail
}
