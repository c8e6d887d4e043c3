package recommend

import "errors"

var (
	// ErrNoSegment means the catalog has nothing applicable to the industry and budget tier.
	ErrNoSegment = errors.New("no matching catalog segment")
	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid recommendation request")
	// ErrUnknownProduct means a product id is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
)
