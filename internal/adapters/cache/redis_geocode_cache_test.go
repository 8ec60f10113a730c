package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
)

func newRedisCache(t *testing.T) (*RedisGeocodeCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisGeocodeCache(client, time.Hour), mr
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t)

	stop := domain.Stop{
		ID:          "gid:9",
		Name:        "Depot",
		Address:     "9 Depot Rd, Phoenix, AZ",
		Coordinates: &domain.Coordinates{Lon: -112.1, Lat: 33.4},
	}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Stop{"depot phoenix": stop}))

	got, err := c.GetMany(ctx, []string{"depot phoenix", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stop, got["depot phoenix"])
}

func TestRedisGeocodeCacheSetsTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	stop := domain.Stop{
		ID:          "gid:9",
		Name:        "Depot",
		Address:     "9 Depot Rd",
		Coordinates: &domain.Coordinates{Lon: 0, Lat: 0},
	}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Stop{"depot": stop}))

	assert.Equal(t, time.Hour, mr.TTL(geocodeKeyPrefix+"depot"))
}

func TestRedisGeocodeCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	stop := domain.Stop{
		ID:          "gid:9",
		Name:        "Depot",
		Address:     "9 Depot Rd",
		Coordinates: &domain.Coordinates{Lon: 0, Lat: 0},
	}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Stop{"depot": stop}))

	mr.FastForward(2 * time.Hour)

	got, err := c.GetMany(ctx, []string{"depot"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
