package pitches

import "errors"

var (
	// ErrNoRecommendations means nothing cleared the score threshold, so there is nothing to pitch.
	ErrNoRecommendations = errors.New("no products to pitch")
	// ErrDeckNotFound means a product exists but its deck cannot be resolved.
	ErrDeckNotFound = errors.New("product deck not found")
)
