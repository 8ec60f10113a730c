package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// Geocoder resolves free text into at most one Stop using the
// OpenRouteService /geocode/search endpoint, backed by an optional
// persistent cache keyed on the normalized query.
type Geocoder struct {
	client  *Client
	cache   ports.GeocodeCache
	country string
}

func NewGeocoder(client *Client, cache ports.GeocodeCache) *Geocoder {
	return &Geocoder{
		client:  client,
		cache:   cache,
		country: "US",
	}
}

type geocodeResponse struct {
	Features []struct {
		Properties struct {
			GID   string `json:"gid"`
			Name  string `json:"name"`
			Label string `json:"label"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Search returns the best match for the given text, or ports.ErrNoMatch.
func (g *Geocoder) Search(ctx context.Context, text string) (_ domain.Stop, err error) {
	defer obs.Time(ctx, "ors.geocode.Search")(&err)

	query := normalize(text)
	if query == "" {
		return domain.Stop{}, ports.ErrNoMatch
	}

	// Check the persistent cache before issuing an external API call.
	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{query})
		if err != nil {
			return domain.Stop{}, fmt.Errorf("geocode search: cache read: %w", err)
		}
		if s, ok := hits[query]; ok {
			return s, nil
		}
	}

	endpoint := g.client.baseURL + "/geocode/search"

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", query)
		q.Set("boundary.country", g.country)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Stop{}, fmt.Errorf("geocode search %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Stop{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Stop{}, ports.ErrNoMatch
	}

	feature := decoded.Features[0]
	coords := feature.Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Stop{}, fmt.Errorf("invalid coordinate format for %q", query)
	}

	address := feature.Properties.Label
	if address == "" {
		address = query
	}
	name := feature.Properties.Name
	if name == "" {
		name = address
	}

	stop := domain.Stop{
		ID:      stopID(feature.Properties.GID, address),
		Name:    name,
		Address: address,
		Coordinates: &domain.Coordinates{
			Lon: coords[0],
			Lat: coords[1],
		},
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Stop{query: stop}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return stop, nil
}

// stopID prefers the provider's stable place identifier; when absent it
// derives a deterministic UUID from the resolved address, so resolving
// the same place twice yields the same identity.
func stopID(gid, address string) string {
	if gid != "" {
		return gid
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(address)).String()
}
