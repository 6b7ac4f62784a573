package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeroute/homeroute/internal/config"
	"github.com/homeroute/homeroute/internal/ors"
)

// fakeAPI counts calls so tests can prove the caches absorbed repeats.
type fakeAPI struct {
	geocodeCalls    int
	directionsCalls int
	coords          map[string]ors.Coordinates
	route           *ors.Route
	geocodeErr      error
	directionsErr   error
}

func (f *fakeAPI) Geocode(_ context.Context, address string) (ors.Coordinates, error) {
	f.geocodeCalls++
	if f.geocodeErr != nil {
		return ors.Coordinates{}, f.geocodeErr
	}
	coords, ok := f.coords[strings.ToLower(address)]
	if !ok {
		return ors.Coordinates{}, ors.ErrNoResults
	}
	return coords, nil
}

func (f *fakeAPI) Directions(_ context.Context, _, _ ors.Coordinates, _, _, _ string) (*ors.Route, error) {
	f.directionsCalls++
	if f.directionsErr != nil {
		return nil, f.directionsErr
	}
	return f.route, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		coords: map[string]ors.Coordinates{
			"berlin hbf":     {13.369, 52.525},
			"brandenburg":    {13.377, 52.516},
			"alexanderplatz": {13.413, 52.521},
		},
		route: &ors.Route{
			Summary:  ors.Summary{Distance: 2.1, Duration: 360},
			Segments: []ors.Segment{{Distance: 2.1, Duration: 360}},
			Geometry: json.RawMessage(`"encoded"`),
		},
	}
}

func newTestEntry(t *testing.T, api RoutingAPI) *Entry {
	t.Helper()
	cfg := config.New()
	return NewEntry(api, cfg, t.TempDir(), zerolog.Nop())
}

func TestPlanRoute(t *testing.T) {
	ctx := context.Background()
	req := PlanRouteRequest{Origin: "Berlin Hbf", Destination: "Brandenburg"}

	t.Run("Success", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		result, err := entry.PlanRoute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Berlin Hbf", result.Origin.Address)
		assert.Equal(t, ors.Coordinates{13.369, 52.525}, result.Origin.Coordinates)
		assert.Equal(t, ors.Coordinates{13.377, 52.516}, result.Destination.Coordinates)
		assert.Equal(t, 2.1, result.Distance)
		assert.Equal(t, 360.0, result.Duration)
		assert.Equal(t, "driving-car", result.Profile) // default applied
		assert.JSONEq(t, `"encoded"`, string(result.Geometry))
	})

	t.Run("RepeatIsServedFromCaches", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2, api.geocodeCalls)
		assert.Equal(t, 1, api.directionsCalls)

		// Addresses differ only in case; geocoding lookup is case-insensitive.
		_, err = entry.PlanRoute(ctx, PlanRouteRequest{Origin: "BERLIN HBF", Destination: "brandenburg"})
		require.NoError(t, err)
		assert.Equal(t, 2, api.geocodeCalls)
		assert.Equal(t, 1, api.directionsCalls)
	})

	t.Run("DifferentProfileRecomputesRoute", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, req)
		require.NoError(t, err)

		cycling := req
		cycling.Profile = "cycling-regular"
		_, err = entry.PlanRoute(ctx, cycling)
		require.NoError(t, err)
		assert.Equal(t, 2, api.directionsCalls)
	})

	t.Run("UnknownProfile", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		bad := req
		bad.Profile = "teleport"
		_, err := entry.PlanRoute(ctx, bad)
		assert.ErrorContains(t, err, "unknown profile")
	})

	t.Run("GeocodeFailureNamesRole", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, PlanRouteRequest{Origin: "nowhere", Destination: "Brandenburg"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ors.ErrNoResults)
		assert.ErrorContains(t, err, "origin")
	})

	t.Run("DirectionsFailure", func(t *testing.T) {
		api := newFakeAPI()
		api.directionsErr = errors.New("boom")
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, req)
		assert.ErrorContains(t, err, "route calculation failed")
	})
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()
	req := PlanRouteRequest{Origin: "Berlin Hbf", Destination: "Brandenburg"}

	t.Run("GeocodingOnlyKeepsRoutes", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, req)
		require.NoError(t, err)

		require.NoError(t, entry.ClearCache(ScopeGeocoding))

		_, err = entry.PlanRoute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 4, api.geocodeCalls)   // both addresses re-geocoded
		assert.Equal(t, 1, api.directionsCalls) // route still cached
	})

	t.Run("RoutesOnlyKeepsGeocoding", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, req)
		require.NoError(t, err)

		require.NoError(t, entry.ClearCache(ScopeRoutes))

		_, err = entry.PlanRoute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2, api.geocodeCalls)
		assert.Equal(t, 2, api.directionsCalls)
	})

	t.Run("All", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, req)
		require.NoError(t, err)

		require.NoError(t, entry.ClearCache(ScopeAll))
		assert.Equal(t, 0, entry.GeocodingCache().Len())
		assert.Equal(t, 0, entry.RouteCache().Len())
	})

	t.Run("UnknownScope", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())
		assert.ErrorContains(t, entry.ClearCache("everything"), "unknown cache scope")
	})
}

func TestUpdateOptions(t *testing.T) {
	ctx := context.Background()
	req := PlanRouteRequest{Origin: "Berlin Hbf", Destination: "Brandenburg"}

	t.Run("TTLZeroWipesRouteCache", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, req)
		require.NoError(t, err)

		cfg := config.New()
		cfg.RouteCacheDays = 0
		entry.UpdateOptions(cfg)

		assert.Equal(t, 0, entry.RouteCache().Len())

		// With the route cache disabled every plan hits the API.
		_, err = entry.PlanRoute(ctx, req)
		require.NoError(t, err)
		_, err = entry.PlanRoute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 3, api.directionsCalls)
	})

	t.Run("UnitsChangeMissesOldRouteEntries", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, req)
		require.NoError(t, err)

		cfg := config.New()
		cfg.Units = "mi"
		entry.UpdateOptions(cfg)
		assert.Equal(t, "mi", entry.Units())

		_, err = entry.PlanRoute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2, api.directionsCalls)
	})
}

func TestSetup(t *testing.T) {
	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := config.New() // no API key
		_, err := Setup(cfg, t.TempDir(), "1.0.0", zerolog.Nop())
		assert.ErrorIs(t, err, config.ErrMissingAPIKey)
	})

	t.Run("Valid", func(t *testing.T) {
		cfg := config.New()
		cfg.APIKey = "abc123"
		entry, err := Setup(cfg, t.TempDir(), "1.0.0", zerolog.Nop())
		require.NoError(t, err)
		assert.NotNil(t, entry)
	})

	t.Run("IncompatibleHost", func(t *testing.T) {
		cfg := config.New()
		cfg.APIKey = "abc123"
		_, err := Setup(cfg, t.TempDir(), "0.0.1", zerolog.Nop())
		assert.ErrorContains(t, err, "host compatibility")
	})
}

func TestManifestCheckHost(t *testing.T) {
	manifest := CurrentManifest("0.1.0")

	assert.NoError(t, manifest.CheckHost("0.1.0"))
	assert.NoError(t, manifest.CheckHost("v1.4.2"))
	assert.Error(t, manifest.CheckHost("0.0.9"))
	assert.Error(t, manifest.CheckHost("not-a-version"))
}
