package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// ErrNotReady is returned when optimization is requested before both a
// depot and at least one delivery stop are registered.
var ErrNotReady = errors.New("optimize: depot and at least one stop are required")

// OptimizeResult pairs a constructed tour with its aggregated metrics.
// It is derived planning data: any mutation of the generating depot/stop
// set makes it stale.
type OptimizeResult struct {
	Tour    domain.Tour
	Summary domain.RouteSummary
}

// Optimize computes a visiting order for the registered locations.
//
// The matrix provider is queried exactly once for the full location set.
// On total provider failure the result degrades to the input-order tour
// with zeroed totals and Degraded set, rather than blocking the caller:
// adapter failures stop at this boundary and never reach the pure
// construction/aggregation functions.
//
// The improvement figure compares the nearest-neighbor tour against the
// input-order tour over the same matrix.
func Optimize(
	ctx context.Context,
	depot domain.Stop,
	stops []domain.Stop,
	provider ports.MatrixProvider,
) (*OptimizeResult, error) {
	if depot.ID == "" || len(stops) == 0 {
		return nil, ErrNotReady
	}

	locations := make([]domain.Stop, 0, 1+len(stops))
	locations = append(locations, depot)
	locations = append(locations, stops...)

	matrix, err := provider.PairwiseMatrix(ctx, locations)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("optimize: pairwise matrix: %w", err)
		}
		log.Printf("matrix provider failed, serving degraded route: %v", err)
		return &OptimizeResult{
			Tour:    inputOrderTour(depot, stops),
			Summary: domain.RouteSummary{Degraded: true},
		}, nil
	}

	tour := ConstructTour(depot, stops, matrix)
	summary := AggregateTour(matrix, tour)

	baseline := AggregateTour(matrix, inputOrderTour(depot, stops))
	if baseline.MissingLegs == 0 {
		summary.ImprovementPct = improvementPct(baseline.DistanceMeters, summary.DistanceMeters)
	}

	return &OptimizeResult{Tour: tour, Summary: summary}, nil
}

// inputOrderTour visits stops exactly as registered. It is both the
// degraded fallback and the baseline for the improvement figure.
func inputOrderTour(depot domain.Stop, stops []domain.Stop) domain.Tour {
	tour := make(domain.Tour, 0, len(stops)+2)
	tour = append(tour, depot.ID)
	for _, s := range stops {
		tour = append(tour, s.ID)
	}
	return append(tour, depot.ID)
}
