package ports

import (
	"context"
	"errors"

	"route-optimizer-service/internal/domain"
)

// ErrNoMatch is returned when free text cannot be resolved to any location.
var ErrNoMatch = errors.New("no matching location found")

// Contract for resolving free text into at most one Stop.
type Geocoder interface {
	// Return the best match for the given text, or ErrNoMatch.
	// Resolved stops always carry coordinates and a session-stable ID.
	Search(ctx context.Context, text string) (domain.Stop, error)
}
