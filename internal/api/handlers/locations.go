package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/registry"
)

// LocationHandler exposes depot and stop management endpoints. All free
// text goes through the geocoder; the registry only ever holds resolved
// stops with a session-stable ID.
type LocationHandler struct {
	Registry *registry.Registry
	Geocoder ports.Geocoder
}

func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	res := dto.LocationsResponse{
		Stops: make([]dto.StopResponse, 0),
		Ready: h.Registry.Ready(),
	}

	if depot, ok := h.Registry.Depot(); ok {
		d := toStopResponse(depot)
		res.Depot = &d
	}
	for _, s := range h.Registry.Stops() {
		res.Stops = append(res.Stops, toStopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// SetDepot geocodes the query and replaces the depot unconditionally,
// invalidating any previously computed route.
func (h *LocationHandler) SetDepot(w http.ResponseWriter, r *http.Request) {
	stop, ok := h.resolve(w, r)
	if !ok {
		return
	}

	h.Registry.SetDepot(stop)
	writeJSON(w, r, http.StatusOK, toStopResponse(stop))
}

// AddStop geocodes the query and appends the stop. Re-adding a stop that
// resolves to the same place is a no-op, not an error.
func (h *LocationHandler) AddStop(w http.ResponseWriter, r *http.Request) {
	stop, ok := h.resolve(w, r)
	if !ok {
		return
	}

	added := h.Registry.AddStop(stop)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, dto.AddStopResponse{Stop: toStopResponse(stop), Added: added})
}

// RemoveStop removes the stop with the given ID; removing an unknown ID
// is a no-op.
func (h *LocationHandler) RemoveStop(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, r, http.StatusBadRequest, "stop id is required")
		return
	}

	h.Registry.RemoveStop(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *LocationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Registry.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// resolve reads the query body and turns it into a Stop via the geocoder.
// Writes the error response itself when resolution fails.
func (h *LocationHandler) resolve(w http.ResponseWriter, r *http.Request) (domain.Stop, bool) {
	var req dto.LocationQueryRequest
	if !decodeBody(w, r, &req) {
		return domain.Stop{}, false
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, r, http.StatusBadRequest, "query is required")
		return domain.Stop{}, false
	}

	s, err := h.Geocoder.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, ports.ErrNoMatch) {
			writeError(w, r, http.StatusUnprocessableEntity, "could not resolve location; try a more specific query")
			return domain.Stop{}, false
		}
		log.Printf("geocode failed query=%q: %v", query, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return domain.Stop{}, false
	}

	return s, true
}
