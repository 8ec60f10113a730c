package services

import "route-optimizer-service/internal/domain"

// Sum per-leg distance and duration of a tour into route totals.
//
// Legs absent from the matrix contribute zero and are counted in
// MissingLegs, so callers can flag an undercounted total instead of
// failing the whole route. A partial route display is more useful
// than none.
func AggregateTour(m *domain.Matrix, tour domain.Tour) domain.RouteSummary {
	var summary domain.RouteSummary

	for i := 0; i+1 < len(tour); i++ {
		leg, ok := m.Leg(tour[i], tour[i+1])
		if !ok {
			summary.MissingLegs++
			continue
		}
		summary.DistanceMeters += leg.DistanceMeters
		summary.DurationSeconds += leg.DurationSeconds
	}

	return summary
}

// improvementPct reports how much shorter the achieved tour is relative to
// a baseline tour length, in percent. Zero when the baseline is unusable
// or the heuristic did not beat it.
func improvementPct(baselineMeters, achievedMeters int) float64 {
	if baselineMeters <= 0 || achievedMeters >= baselineMeters {
		return 0
	}
	return float64(baselineMeters-achievedMeters) / float64(baselineMeters) * 100
}
