package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/adapters/ors"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/registry"
)

// fakeGeocoder resolves a fixed query table, like the autocomplete
// adapter would for well-known addresses.
type fakeGeocoder struct {
	stops map[string]domain.Stop
}

func (f *fakeGeocoder) Search(ctx context.Context, text string) (domain.Stop, error) {
	if s, ok := f.stops[text]; ok {
		return s, nil
	}
	return domain.Stop{}, ports.ErrNoMatch
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	geocoder := &fakeGeocoder{stops: map[string]domain.Stop{
		"hub":    {ID: "D", Name: "Hub", Address: "1 Hub Way", Coordinates: &domain.Coordinates{Lon: 0, Lat: 0}},
		"stop b": {ID: "B", Name: "B", Address: "2 B St", Coordinates: &domain.Coordinates{Lon: 1, Lat: 0}},
		"stop c": {ID: "C", Name: "C", Address: "3 C St", Coordinates: &domain.Coordinates{Lon: 0, Lat: 1}},
	}}

	provider := ors.NewMockMatrixProvider([]ors.MockPair{
		{From: "D", To: "B", Meters: 1000, Seconds: 300},
		{From: "D", To: "C", Meters: 3000, Seconds: 900},
		{From: "B", To: "C", Meters: 1500, Seconds: 450},
		{From: "B", To: "D", Meters: 1000, Seconds: 300},
		{From: "C", To: "D", Meters: 3000, Seconds: 900},
		{From: "C", To: "B", Meters: 1500, Seconds: 450},
	})

	return NewRouter(registry.New(), geocoder, provider)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndOptimizeFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/locations/depot", `{"query":"hub"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"stop c"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"stop b"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Re-adding a stop that resolves to the same place is a no-op.
	rec = doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"stop b"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var added dto.AddStopResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.False(t, added.Added)

	rec = doJSON(t, router, http.MethodGet, "/locations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var locations dto.LocationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locations))
	require.NotNil(t, locations.Depot)
	assert.Equal(t, "D", locations.Depot.ID)
	require.Len(t, locations.Stops, 2)
	assert.Equal(t, "C", locations.Stops[0].ID)
	assert.Equal(t, "B", locations.Stops[1].ID)
	assert.True(t, locations.Ready)

	rec = doJSON(t, router, http.MethodPost, "/optimize", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var route dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &route))
	assert.Equal(t, []string{"D", "B", "C", "D"}, route.Tour)
	assert.Equal(t, 5.5, route.Summary.TotalDistanceKm)
	assert.Equal(t, 28, route.Summary.TotalDurationMin)
	assert.False(t, route.Summary.Degraded)

	rec = doJSON(t, router, http.MethodGet, "/route", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMutationInvalidatesCurrentRoute(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPut, "/locations/depot", `{"query":"hub"}`)
	doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"stop b"}`)
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/optimize", "").Code)
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/route", "").Code)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"stop c"}`).Code)

	rec := doJSON(t, router, http.MethodGet, "/route", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "cached route must not survive a stop mutation")
}

func TestOptimizeConflictsWhenNotReady(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/optimize", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	doJSON(t, router, http.MethodPut, "/locations/depot", `{"query":"hub"}`)
	doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"stop b"}`)
	require.Equal(t, http.StatusNoContent, doJSON(t, router, http.MethodDelete, "/locations", "").Code)

	rec = doJSON(t, router, http.MethodPost, "/optimize", "")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUnresolvableLocation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"nowhere at all"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"","extra":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveStopEndpointIsIdempotent(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPut, "/locations/depot", `{"query":"hub"}`)
	doJSON(t, router, http.MethodPost, "/locations/stops", `{"query":"stop b"}`)

	require.Equal(t, http.StatusNoContent, doJSON(t, router, http.MethodDelete, "/locations/stops/B", "").Code)
	require.Equal(t, http.StatusNoContent, doJSON(t, router, http.MethodDelete, "/locations/stops/B", "").Code)

	rec := doJSON(t, router, http.MethodGet, "/locations", "")
	var locations dto.LocationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locations))
	assert.Empty(t, locations.Stops)
}
