package api

import (
	"net/http"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/registry"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(reg *registry.Registry, geocoder ports.Geocoder, provider ports.MatrixProvider) http.Handler {
	mux := http.NewServeMux()

	locHandler := &handlers.LocationHandler{Registry: reg, Geocoder: geocoder}
	routeHandler := &handlers.RouteHandler{Registry: reg, Provider: provider}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /locations", locHandler.Get)
	mux.HandleFunc("PUT /locations/depot", locHandler.SetDepot)
	mux.HandleFunc("POST /locations/stops", locHandler.AddStop)
	mux.HandleFunc("DELETE /locations/stops/{id}", locHandler.RemoveStop)
	mux.HandleFunc("DELETE /locations", locHandler.Clear)
	mux.HandleFunc("POST /optimize", routeHandler.Optimize)
	mux.HandleFunc("GET /route", routeHandler.Current)

	return loggingMiddleware(mux)
}
