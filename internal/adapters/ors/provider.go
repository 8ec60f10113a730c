package ors

import (
	"context"
	"errors"
	"fmt"
	"log"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// MatrixProvider implements ports.MatrixProvider using OpenRouteService.
//
// It coordinates:
//   - Coordinate resolution for stops registered without coordinates
//   - A persistent leg cache consulted before the network
//   - A single matrix call for the full location set, with retry/backoff
//
// The provider is safe for concurrent use.
type MatrixProvider struct {
	client   *Client
	cache    ports.MatrixCache
	geocoder ports.Geocoder
	profile  string
}

func NewMatrixProvider(client *Client, cache ports.MatrixCache, geocoder ports.Geocoder) *MatrixProvider {
	return &MatrixProvider{
		client:   client,
		cache:    cache,
		geocoder: geocoder,
		profile:  "driving-car",
	}
}

// PairwiseMatrix returns travel costs between all given locations.
//
// Pairs the routing engine cannot connect are left out of the matrix
// rather than failing the call; only a total provider failure returns an
// error.
func (p *MatrixProvider) PairwiseMatrix(
	ctx context.Context,
	locations []domain.Stop,
) (_ *domain.Matrix, err error) {
	defer obs.Time(ctx, "ors.PairwiseMatrix")(&err)

	if len(locations) < 2 {
		return nil, errors.New("pairwise matrix: at least two locations are required")
	}

	ids := make([]string, 0, len(locations))
	for _, s := range locations {
		if s.ID == "" {
			return nil, fmt.Errorf("pairwise matrix: location %q has no id", s.Address)
		}
		ids = append(ids, s.ID)
	}

	if cached, ok, err := p.fromCache(ctx, ids); err != nil {
		return nil, fmt.Errorf("pairwise matrix: leg cache: %w", err)
	} else if ok {
		return cached, nil
	}

	coords, err := p.resolveCoordinates(ctx, locations)
	if err != nil {
		return nil, fmt.Errorf("pairwise matrix: %w", err)
	}

	// One matrix call covers every pair for this location set.
	legs, err := p.fetchMatrix(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("pairwise matrix: %w", err)
	}

	matrix := domain.NewMatrix()
	for i := range ids {
		for j := range ids {
			if i == j || legs[i][j] == nil {
				continue
			}
			matrix.Put(ids[i], ids[j], *legs[i][j])
		}
	}

	p.writeBack(ctx, ids, legs)

	return matrix, nil
}

// fromCache rebuilds the matrix from the leg cache. ok is true only when
// every directed pair is present, so a partially cached set still goes to
// the network as one call.
func (p *MatrixProvider) fromCache(ctx context.Context, ids []string) (*domain.Matrix, bool, error) {
	if p.cache == nil {
		return nil, false, nil
	}

	matrix := domain.NewMatrix()
	for i, origin := range ids {
		destinations := make([]string, 0, len(ids)-1)
		for j, d := range ids {
			if j != i {
				destinations = append(destinations, d)
			}
		}

		hits, err := p.cache.GetMany(ctx, origin, destinations)
		if err != nil {
			return nil, false, err
		}
		if len(hits) != len(destinations) {
			return nil, false, nil
		}
		for dest, leg := range hits {
			matrix.Put(origin, dest, leg)
		}
	}

	return matrix, true, nil
}

func (p *MatrixProvider) writeBack(ctx context.Context, ids []string, legs [][]*domain.Leg) {
	if p.cache == nil {
		return
	}

	for i, origin := range ids {
		row := make(map[string]domain.Leg)
		for j, dest := range ids {
			if i == j || legs[i][j] == nil {
				continue
			}
			row[dest] = *legs[i][j]
		}
		if len(row) == 0 {
			continue
		}
		if err := p.cache.PutMany(ctx, origin, row); err != nil {
			log.Printf("leg cache write failed origin=%s: %v", origin, err)
		}
	}
}

// resolveCoordinates returns coordinates aligned with locations, geocoding
// any stop registered from a bare address.
func (p *MatrixProvider) resolveCoordinates(
	ctx context.Context,
	locations []domain.Stop,
) ([]domain.Coordinates, error) {
	coords := make([]domain.Coordinates, 0, len(locations))
	for _, s := range locations {
		if s.Coordinates != nil {
			coords = append(coords, *s.Coordinates)
			continue
		}

		if p.geocoder == nil {
			return nil, fmt.Errorf("no coordinates for %q and no geocoder configured", s.Address)
		}

		resolved, err := p.geocoder.Search(ctx, s.Address)
		if err != nil {
			return nil, fmt.Errorf("resolve coordinates for %q: %w", s.Address, err)
		}
		if resolved.Coordinates == nil {
			return nil, fmt.Errorf("geocoder returned no coordinates for %q", s.Address)
		}
		coords = append(coords, *resolved.Coordinates)
	}

	return coords, nil
}
