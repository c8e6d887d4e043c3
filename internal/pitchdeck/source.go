package pitchdeck

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/object"
)

// Source resolves a document name to its bytes. A missing document is reported
// with an error matching object.ErrNotFound.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// StoreSource reads decks from an object store.
type StoreSource struct {
	Store object.ObjectStore
}

// NewStoreSource wraps store.
func NewStoreSource(store object.ObjectStore) *StoreSource {
	return &StoreSource{Store: store}
}

// Fetch reads the named deck fully into memory.
func (s *StoreSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("fetch deck: empty name: %w", object.ErrNotFound)
	}
	body, err := s.Store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch deck %s: %w", name, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("fetch deck %s: read: %w", name, err)
	}
	return data, nil
}
