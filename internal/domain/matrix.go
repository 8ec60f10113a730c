package domain

// Leg is the travel cost between two locations in one direction.
type Leg struct {
	DistanceMeters  int
	DurationSeconds int
}

// Matrix holds provider-sourced pairwise travel costs keyed by stop ID.
//
// The matrix is not assumed symmetric or triangle-inequality-respecting,
// and entries may be missing for some pairs when the provider could not
// route them. Callers decide how to treat a missing leg: tour construction
// treats it as infinite cost, aggregation skips and counts it.
type Matrix struct {
	legs map[string]Leg
}

func NewMatrix() *Matrix {
	return &Matrix{legs: make(map[string]Leg)}
}

func (m *Matrix) Put(from, to string, l Leg) {
	m.legs[from+"|"+to] = l
}

// Leg returns the travel cost from one stop to another, and whether the
// provider supplied an entry for that pair.
func (m *Matrix) Leg(from, to string) (Leg, bool) {
	l, ok := m.legs[from+"|"+to]
	return l, ok
}

// Len reports the number of known directed legs.
func (m *Matrix) Len() int { return len(m.legs) }
