package dto

type RouteSummaryResponse struct {
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalDurationMin int     `json:"total_duration_min"`
	ImprovementPct   float64 `json:"improvement_pct"`
	MissingLegs      int     `json:"missing_legs"`
	Degraded         bool    `json:"degraded"`
}

type RouteResponse struct {
	Tour    []string             `json:"tour"`
	Summary RouteSummaryResponse `json:"summary"`
}
