package domain

// Represents a single location to visit.
//
// ID is stable for the lifetime of a session and is the identity used for
// deduplication and matrix lookups: two stops with the same ID are the same
// location. Coordinates may be nil when only a free-text address is known;
// the routing adapter resolves them on demand.
//
// The depot is an ordinary Stop playing a distinguished role: every tour
// starts and ends there, and at most one depot is active at a time.
type Stop struct {
	ID          string
	Name        string
	Address     string
	Coordinates *Coordinates
}
