package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/domain"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache stores resolved stops in Redis with a TTL, for
// deployments that share geocode results across service instances.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type cachedStop struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
}

// Fetch cached stops for the given queries.
func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (map[string]domain.Stop, error) {
	if c.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	if len(queries) == 0 {
		return map[string]domain.Stop{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(queries))
	keys := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}

		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		uniq = append(uniq, q)
		keys = append(keys, geocodeKeyPrefix+q)
	}

	if len(uniq) == 0 {
		return map[string]domain.Stop{}, nil
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Stop, len(uniq))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var cs cachedStop
		if err := json.Unmarshal([]byte(raw), &cs); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode entry %q: %w", keys[i], err)
		}
		out[uniq[i]] = domain.Stop{
			ID:          cs.ID,
			Name:        cs.Name,
			Address:     cs.Address,
			Coordinates: &domain.Coordinates{Lon: cs.Lon, Lat: cs.Lat},
		}
	}

	return out, nil
}

// Store query -> resolved stop mappings in the cache.
func (c *RedisGeocodeCache) PutMany(ctx context.Context, stops map[string]domain.Stop) error {
	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(stops) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for key, stop := range stops {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert geocode cache: empty query key")
		}
		if stop.Coordinates == nil {
			return fmt.Errorf("insert geocode cache: stop %q has no coordinates", stop.ID)
		}

		payload, err := json.Marshal(cachedStop{
			ID:      stop.ID,
			Name:    stop.Name,
			Address: stop.Address,
			Lon:     stop.Coordinates.Lon,
			Lat:     stop.Coordinates.Lat,
		})
		if err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
		}

		pipe.Set(ctx, geocodeKeyPrefix+key, payload, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}

	return nil
}
