// Package registry holds the session's depot and delivery stops and the
// last route computed for them.
package registry

import (
	"sync"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
)

// Registry is the in-memory state holder for one planning session.
//
// Every mutation bumps a generation counter and drops the cached route:
// a tour is only valid for the exact (depot, stops) set it was computed
// from. The generation also guards against a provider response that was
// in flight while the location set changed; such results are discarded
// instead of being published as current.
type Registry struct {
	mu     sync.Mutex
	depot  *domain.Stop
	stops  []domain.Stop
	gen    uint64
	result *services.OptimizeResult
}

func New() *Registry {
	return &Registry{}
}

// SetDepot replaces the depot unconditionally and invalidates any cached route.
func (r *Registry) SetDepot(s domain.Stop) {
	r.mu.Lock()
	defer r.mu.Unlock()

	depot := s
	r.depot = &depot
	r.invalidate()
}

// AddStop appends a stop unless one with the same ID is already registered,
// in which case the call is a no-op. Insertion order is significant: it is
// the tour constructor's initial traversal and tie-break order.
// Reports whether the stop was added.
func (r *Registry) AddStop(s domain.Stop) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.stops {
		if existing.ID == s.ID {
			return false
		}
	}

	r.stops = append(r.stops, s)
	r.invalidate()
	return true
}

// RemoveStop removes the stop with the given ID if present; no-op otherwise.
// Reports whether a stop was removed.
func (r *Registry) RemoveStop(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.stops {
		if s.ID == id {
			r.stops = append(r.stops[:i], r.stops[i+1:]...)
			r.invalidate()
			return true
		}
	}
	return false
}

// Clear empties the depot and all stops and invalidates any cached route.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.depot = nil
	r.stops = nil
	r.invalidate()
}

// Ready reports whether optimization is permitted: a depot is set and at
// least one delivery stop is registered.
func (r *Registry) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.depot != nil && len(r.stops) > 0
}

// Depot returns a copy of the current depot, if set.
func (r *Registry) Depot() (domain.Stop, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.depot == nil {
		return domain.Stop{}, false
	}
	return *r.depot, true
}

// Stops returns a copy of the registered stops in insertion order.
func (r *Registry) Stops() []domain.Stop {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Stop, len(r.stops))
	copy(out, r.stops)
	return out
}

// Snapshot returns the depot, stops, and current generation for a
// race-free optimization run. ok is false when the registry is not ready.
func (r *Registry) Snapshot() (depot domain.Stop, stops []domain.Stop, gen uint64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.depot == nil || len(r.stops) == 0 {
		return domain.Stop{}, nil, r.gen, false
	}

	stops = make([]domain.Stop, len(r.stops))
	copy(stops, r.stops)
	return *r.depot, stops, r.gen, true
}

// StoreResult publishes a computed route, unless the location set changed
// since the generation it was computed against. Reports whether the
// result was accepted as current.
func (r *Registry) StoreResult(gen uint64, res *services.OptimizeResult) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		return false
	}
	r.result = res
	return true
}

// Result returns the current route, if one is cached and still valid.
func (r *Registry) Result() (*services.OptimizeResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.result == nil {
		return nil, false
	}
	return r.result, true
}

// invalidate must be called with the lock held.
func (r *Registry) invalidate() {
	r.gen++
	r.result = nil
}
