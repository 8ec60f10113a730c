package services

import (
	"math"

	"route-optimizer-service/internal/domain"
)

// Construct a tour using a greedy nearest-neighbor algorithm.
//
// The algorithm minimizes immediate travel distance at each step.
// It does not attempt global route optimization (e.g., TSP solvers or a
// 2-opt improvement pass). The design prioritizes determinism and
// simplicity over optimality.
//
// Ties break toward the stop appearing earliest in input order, and a
// candidate whose leg is absent from the matrix costs +inf: it is chosen
// only when every remaining candidate is unreachable, in which case the
// first remaining stop by input order is taken. A partial matrix degrades
// route quality, never the tour itself.
func ConstructTour(depot domain.Stop, stops []domain.Stop, m *domain.Matrix) domain.Tour {
	route := make(domain.Tour, 0, len(stops)+2)
	route = append(route, depot.ID)

	remaining := make([]domain.Stop, len(stops))
	copy(remaining, stops)

	current := depot.ID
	for len(remaining) > 0 {
		best := -1
		bestDistance := math.MaxInt

		// Select next stop by minimum travel distance (greedy step).
		// Strict < keeps the lowest input-order index among ties.
		for i, s := range remaining {
			leg, ok := m.Leg(current, s.ID)
			if !ok {
				continue
			}
			if leg.DistanceMeters < bestDistance {
				bestDistance = leg.DistanceMeters
				best = i
			}
		}

		if best == -1 {
			best = 0
		}

		current = remaining[best].ID
		route = append(route, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	route = append(route, depot.ID)
	return route
}
