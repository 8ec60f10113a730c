package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Cache boundary for origin->destination travel legs. Keys are stop IDs.
type MatrixCache interface {
	// Fetch cached legs for one origin and multiple destinations.
	// Absent pairs are simply missing from the returned map.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]domain.Leg, error)
	// Store legs for a single origin.
	PutMany(ctx context.Context, origin string, legs map[string]domain.Leg) error
}

// Cache boundary mapping normalized geocode queries to resolved stops.
type GeocodeCache interface {
	GetMany(ctx context.Context, queries []string) (map[string]domain.Stop, error)
	PutMany(ctx context.Context, stops map[string]domain.Stop) error
}
