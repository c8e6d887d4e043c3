package pitchdeck

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks operator errors in the deck deployment, such as a bad skeleton.
	ErrConfiguration = errors.New("pitch deck configuration error")
	// ErrSkeletonMissing means the skeleton deck could not be resolved or read.
	ErrSkeletonMissing = fmt.Errorf("%w: skeleton deck missing", ErrConfiguration)
	// ErrSkeletonTooShort means the skeleton has fewer than MinSkeletonPages pages.
	ErrSkeletonTooShort = fmt.Errorf("%w: skeleton deck too short", ErrConfiguration)
	// ErrNoProductDecks means none of the selected products had a resolvable deck.
	ErrNoProductDecks = errors.New("no product deck could be resolved")
)
