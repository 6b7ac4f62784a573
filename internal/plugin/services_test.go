package plugin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCall(t *testing.T) {
	ctx := context.Background()

	t.Run("PlanRoute", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		payload := json.RawMessage(`{"origin":"Berlin Hbf","destination":"Brandenburg","profile":"cycling-regular"}`)
		raw, err := entry.HandleCall(ctx, ServicePlanRoute, payload)
		require.NoError(t, err)

		var result PlanResult
		require.NoError(t, json.Unmarshal(raw, &result))
		assert.Equal(t, "cycling-regular", result.Profile)
		assert.Equal(t, 2.1, result.Distance)
	})

	t.Run("PlanRouteMissingDestination", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		_, err := entry.HandleCall(ctx, ServicePlanRoute, json.RawMessage(`{"origin":"Berlin Hbf"}`))
		assert.ErrorContains(t, err, "invalid service payload")
	})

	t.Run("PlanRouteRejectsUnknownProfile", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		payload := json.RawMessage(`{"origin":"a","destination":"b","profile":"teleport"}`)
		_, err := entry.HandleCall(ctx, ServicePlanRoute, payload)
		assert.ErrorContains(t, err, "invalid service payload")
	})

	t.Run("PlanRouteRejectsExtraFields", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		payload := json.RawMessage(`{"origin":"a","destination":"b","speed":"ludicrous"}`)
		_, err := entry.HandleCall(ctx, ServicePlanRoute, payload)
		assert.ErrorContains(t, err, "invalid service payload")
	})

	t.Run("PlanRouteMalformedJSON", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		_, err := entry.HandleCall(ctx, ServicePlanRoute, json.RawMessage(`{oops`))
		assert.ErrorContains(t, err, "malformed service payload")
	})

	t.Run("ClearCacheDefaultsToAll", func(t *testing.T) {
		api := newFakeAPI()
		entry := newTestEntry(t, api)

		_, err := entry.PlanRoute(ctx, PlanRouteRequest{Origin: "Berlin Hbf", Destination: "Brandenburg"})
		require.NoError(t, err)

		_, err = entry.HandleCall(ctx, ServiceClearCache, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, entry.GeocodingCache().Len())
		assert.Equal(t, 0, entry.RouteCache().Len())
	})

	t.Run("ClearCacheScoped", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		_, err := entry.PlanRoute(ctx, PlanRouteRequest{Origin: "Berlin Hbf", Destination: "Brandenburg"})
		require.NoError(t, err)

		_, err = entry.HandleCall(ctx, ServiceClearCache, json.RawMessage(`{"cache_type":"routes"}`))
		require.NoError(t, err)
		assert.Equal(t, 0, entry.RouteCache().Len())
		assert.NotZero(t, entry.GeocodingCache().Len())
	})

	t.Run("ClearCacheRejectsUnknownScope", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		_, err := entry.HandleCall(ctx, ServiceClearCache, json.RawMessage(`{"cache_type":"everything"}`))
		assert.ErrorContains(t, err, "invalid service payload")
	})

	t.Run("UnknownService", func(t *testing.T) {
		entry := newTestEntry(t, newFakeAPI())

		_, err := entry.HandleCall(ctx, "reticulate_splines", json.RawMessage(`{}`))
		assert.ErrorContains(t, err, "unknown service")
	})
}
