package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/adapters/ors"
	"route-optimizer-service/internal/domain"
)

func TestOptimizeRequiresDepotAndStops(t *testing.T) {
	provider := ors.NewMockMatrixProvider(nil)

	_, err := Optimize(context.Background(), domain.Stop{}, []domain.Stop{testStop("S1")}, provider)
	require.ErrorIs(t, err, ErrNotReady)

	_, err = Optimize(context.Background(), testStop("D"), nil, provider)
	require.ErrorIs(t, err, ErrNotReady)
}

func TestOptimizeComputesImprovementOverInputOrder(t *testing.T) {
	pairs := []ors.MockPair{
		{From: "A", To: "B", Meters: 10, Seconds: 600},
		{From: "A", To: "C", Meters: 50, Seconds: 3000},
		{From: "A", To: "D", Meters: 20, Seconds: 1200},
		{From: "B", To: "C", Meters: 15, Seconds: 900},
		{From: "B", To: "D", Meters: 25, Seconds: 1500},
		{From: "C", To: "D", Meters: 5, Seconds: 300},
		{From: "B", To: "A", Meters: 10, Seconds: 600},
		{From: "C", To: "A", Meters: 50, Seconds: 3000},
		{From: "D", To: "A", Meters: 20, Seconds: 1200},
		{From: "C", To: "B", Meters: 15, Seconds: 900},
		{From: "D", To: "B", Meters: 25, Seconds: 1500},
		{From: "D", To: "C", Meters: 5, Seconds: 300},
	}
	provider := ors.NewMockMatrixProvider(pairs)

	// Registered order C, D, B: the input-order baseline costs
	// 50 + 5 + 25 + 10 = 90, the nearest-neighbor tour 10 + 15 + 5 + 20 = 50.
	stops := []domain.Stop{testStop("C"), testStop("D"), testStop("B")}

	res, err := Optimize(context.Background(), testStop("A"), stops, provider)
	require.NoError(t, err)

	require.Equal(t, domain.Tour{"A", "B", "C", "D", "A"}, res.Tour)
	assert.Equal(t, 50, res.Summary.DistanceMeters)
	assert.Equal(t, 3000, res.Summary.DurationSeconds)
	assert.Zero(t, res.Summary.MissingLegs)
	assert.False(t, res.Summary.Degraded)
	assert.InDelta(t, 100.0*40.0/90.0, res.Summary.ImprovementPct, 1e-9)
}

func TestOptimizeDegradesOnTotalProviderFailure(t *testing.T) {
	provider := ors.NewFailingMatrixProvider(errors.New("matrix service unavailable"))

	stops := []domain.Stop{testStop("S1"), testStop("S2")}
	res, err := Optimize(context.Background(), testStop("D"), stops, provider)
	require.NoError(t, err)

	assert.Equal(t, domain.Tour{"D", "S1", "S2", "D"}, res.Tour)
	assert.True(t, res.Summary.Degraded)
	assert.Zero(t, res.Summary.DistanceMeters)
	assert.Zero(t, res.Summary.DurationSeconds)
	assert.Zero(t, res.Summary.ImprovementPct)
}

func TestOptimizePropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := ors.NewFailingMatrixProvider(context.Canceled)
	_, err := Optimize(ctx, testStop("D"), []domain.Stop{testStop("S1")}, provider)
	require.Error(t, err)
}
