package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Contract for retrieving the full pairwise travel-cost matrix for a set of
// locations (depot first, delivery stops after, in registry order).
//
// Implementations may return a partial matrix: pairs the provider could not
// route are simply absent. A returned error means the provider failed
// outright and no matrix is available.
type MatrixProvider interface {
	PairwiseMatrix(ctx context.Context, locations []domain.Stop) (*domain.Matrix, error)
}
