package handlers

import (
	"errors"
	"log"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/registry"
	"route-optimizer-service/internal/services"
)

// RouteHandler runs the optimization and serves the current route.
type RouteHandler struct {
	Registry *registry.Registry
	Provider ports.MatrixProvider
}

// Optimize computes a route for the current location set.
//
// The registry generation is snapshotted before the provider call; if the
// locations change while the matrix request is in flight, the result is
// still returned to this caller but never published as the registry's
// current route.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	depot, stops, gen, ok := h.Registry.Snapshot()
	if !ok {
		writeError(w, r, http.StatusConflict, "optimize requires a depot and at least one stop")
		return
	}

	res, err := services.Optimize(r.Context(), depot, stops, h.Provider)
	if err != nil {
		if errors.Is(err, services.ErrNotReady) {
			writeError(w, r, http.StatusConflict, "optimize requires a depot and at least one stop")
			return
		}
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !h.Registry.StoreResult(gen, res) {
		log.Printf("locations changed during optimization; stale result not cached")
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(res))
}

// Current returns the cached route for the present location set, if any.
func (h *RouteHandler) Current(w http.ResponseWriter, r *http.Request) {
	res, ok := h.Registry.Result()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no current route; run optimize first")
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(res))
}

func toRouteResponse(res *services.OptimizeResult) dto.RouteResponse {
	return dto.RouteResponse{
		Tour: res.Tour,
		Summary: dto.RouteSummaryResponse{
			TotalDistanceKm:  res.Summary.DistanceKm(),
			TotalDurationMin: res.Summary.DurationMinutes(),
			ImprovementPct:   res.Summary.ImprovementPct,
			MissingLegs:      res.Summary.MissingLegs,
			Degraded:         res.Summary.Degraded,
		},
	}
}
