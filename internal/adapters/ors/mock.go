package ors

import (
	"context"

	"route-optimizer-service/internal/domain"
)

type MockPair struct {
	From, To string
	Meters   int
	Seconds  int
}

// MockMatrixProvider serves a fixed leg table for tests. Pairs left out of
// the table behave like provider-unroutable legs.
type MockMatrixProvider struct {
	matrix *domain.Matrix
	err    error
}

func NewMockMatrixProvider(pairs []MockPair) *MockMatrixProvider {
	m := domain.NewMatrix()
	for _, p := range pairs {
		m.Put(p.From, p.To, domain.Leg{DistanceMeters: p.Meters, DurationSeconds: p.Seconds})
	}
	return &MockMatrixProvider{matrix: m}
}

// NewFailingMatrixProvider simulates a total provider outage.
func NewFailingMatrixProvider(err error) *MockMatrixProvider {
	return &MockMatrixProvider{err: err}
}

func (p *MockMatrixProvider) PairwiseMatrix(ctx context.Context, locations []domain.Stop) (*domain.Matrix, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.matrix, nil
}
