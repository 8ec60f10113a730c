package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// PGGeocodeCache is a Postgres-backed cache mapping normalized geocode
// queries to resolved stops.
type PGGeocodeCache struct {
	DB *sql.DB
}

func NewPGGeocodeCache(db *sql.DB) *PGGeocodeCache {
	return &PGGeocodeCache{DB: db}
}

// Fetch cached stops for the given queries.
func (s *PGGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Stop, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	if len(queries) == 0 {
		return map[string]domain.Stop{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(queries))
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
	}

	if len(uniq) == 0 {
		return map[string]domain.Stop{}, nil
	}

	q := `
	SELECT query, stop_id, name, address, lon, lat
    FROM geocode_cache
    WHERE query = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Stop, len(uniq))
	for rows.Next() {
		var key, id, name, address string
		var lon, lat float64
		if err := rows.Scan(&key, &id, &name, &address, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[key] = domain.Stop{
			ID:          id,
			Name:        name,
			Address:     address,
			Coordinates: &domain.Coordinates{Lon: lon, Lat: lat},
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store query -> resolved stop mappings in the cache.
func (s *PGGeocodeCache) PutMany(ctx context.Context, stops map[string]domain.Stop) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(stops) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (query, stop_id, name, address, lon, lat)
    VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (query) DO UPDATE
	SET stop_id = EXCLUDED.stop_id,
		name = EXCLUDED.name,
		address = EXCLUDED.address,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, stop := range stops {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert geocode cache: empty query key")
		}
		if stop.Coordinates == nil {
			return fmt.Errorf("insert geocode cache: stop %q has no coordinates", stop.ID)
		}

		_, err := stmt.ExecContext(ctx, key, stop.ID, stop.Name, stop.Address, stop.Coordinates.Lon, stop.Coordinates.Lat)
		if err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
