package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func TestSqliteMatrixCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteMatrixCache(newTestDB(t))

	legs := map[string]domain.Leg{
		"S1": {DistanceMeters: 1000, DurationSeconds: 300},
		"S2": {DistanceMeters: 2000, DurationSeconds: 600},
	}
	require.NoError(t, c.PutMany(ctx, "D", legs))

	got, err := c.GetMany(ctx, "D", []string{"S1", "S2", "S3"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, legs["S1"], got["S1"])
	assert.Equal(t, legs["S2"], got["S2"])
	_, ok := got["S3"]
	assert.False(t, ok, "uncached destination must be absent, not zero")
}

func TestSqliteMatrixCacheUpsert(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteMatrixCache(newTestDB(t))

	require.NoError(t, c.PutMany(ctx, "D", map[string]domain.Leg{
		"S1": {DistanceMeters: 1000, DurationSeconds: 300},
	}))
	require.NoError(t, c.PutMany(ctx, "D", map[string]domain.Leg{
		"S1": {DistanceMeters: 1100, DurationSeconds: 330},
	}))

	got, err := c.GetMany(ctx, "D", []string{"S1"})
	require.NoError(t, err)
	assert.Equal(t, domain.Leg{DistanceMeters: 1100, DurationSeconds: 330}, got["S1"])
}

func TestSqliteMatrixCacheValidation(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteMatrixCache(newTestDB(t))

	_, err := c.GetMany(ctx, "", []string{"S1"})
	require.Error(t, err)

	got, err := c.GetMany(ctx, "D", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(newTestDB(t))

	stop := domain.Stop{
		ID:          "gid:1",
		Name:        "Warehouse",
		Address:     "1 Warehouse Way, Phoenix, AZ",
		Coordinates: &domain.Coordinates{Lon: -112.07, Lat: 33.45},
	}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Stop{"warehouse phoenix": stop}))

	got, err := c.GetMany(ctx, []string{"warehouse phoenix", "unknown"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stop, got["warehouse phoenix"])
}

func TestSqliteGeocodeCacheRejectsStopWithoutCoordinates(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(newTestDB(t))

	err := c.PutMany(ctx, map[string]domain.Stop{"x": {ID: "gid:2", Name: "X", Address: "X"}})
	require.Error(t, err)
}
