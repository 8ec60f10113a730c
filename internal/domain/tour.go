package domain

import "math"

// Tour is an ordered visiting sequence of stop IDs. A well-formed tour for
// n delivery stops has length n+2: the depot ID first and last, and every
// delivery stop exactly once in between.
type Tour []string

// RouteSummary aggregates per-leg costs of a Tour into route totals.
//
// MissingLegs counts consecutive pairs the matrix had no entry for; their
// contribution to the totals is zero, so a nonzero count means the totals
// undercount the true route cost. Degraded marks a summary produced after
// a total provider failure, where no matrix was available at all.
type RouteSummary struct {
	DistanceMeters  int
	DurationSeconds int
	MissingLegs     int
	ImprovementPct  float64
	Degraded        bool
}

// DistanceKm returns the total distance in kilometers, rounded to one decimal.
func (s RouteSummary) DistanceKm() float64 {
	return math.Round(float64(s.DistanceMeters)/1000*10) / 10
}

// DurationMinutes returns the total duration in whole minutes, rounded to nearest.
func (s RouteSummary) DurationMinutes() int {
	return int(math.Round(float64(s.DurationSeconds) / 60))
}
