// Package plugin implements the homeroute entry lifecycle: it owns the
// routing API client and the two persistent caches, and exposes the
// plan_route and clear_cache services to the host application.
package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/homeroute/homeroute/internal/cache"
	"github.com/homeroute/homeroute/internal/config"
	"github.com/homeroute/homeroute/internal/logging"
	"github.com/homeroute/homeroute/internal/ors"
	"github.com/homeroute/homeroute/pkg/version"
)

// RoutingAPI is the slice of the ors client the entry depends on.
type RoutingAPI interface {
	Geocode(ctx context.Context, address string) (ors.Coordinates, error)
	Directions(ctx context.Context, origin, destination ors.Coordinates, profile, units, language string) (*ors.Route, error)
}

// Entry is one configured instance of the plugin. It owns its caches
// exclusively; the host serializes all calls into an Entry, so there is no
// locking here.
type Entry struct {
	api       RoutingAPI
	geocoding *cache.GeocodingCache
	routes    *cache.RouteCache
	units     string
	language  string
	logger    zerolog.Logger
}

// Setup builds an Entry from config: validates options, checks host
// compatibility, creates the API client, and loads both caches from dataDir.
func Setup(cfg *config.Config, dataDir, hostVersion string, logger zerolog.Logger) (*Entry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	manifest := CurrentManifest(version.GetVersion())
	if err := manifest.CheckHost(hostVersion); err != nil {
		return nil, fmt.Errorf("host compatibility check failed: %w", err)
	}

	var opts []ors.Option
	if cfg.BaseURL != "" {
		opts = append(opts, ors.WithBaseURL(cfg.BaseURL))
	}
	api := ors.NewClient(cfg.APIKey, logger, opts...)
	return NewEntry(api, cfg, dataDir, logger), nil
}

// NewEntry wires an Entry from an explicit API implementation. Used by Setup
// and by tests that substitute a fake API.
func NewEntry(api RoutingAPI, cfg *config.Config, dataDir string, logger zerolog.Logger) *Entry {
	cacheLogger := logging.ComponentLogger(logger, "cache")
	return &Entry{
		api:       api,
		geocoding: cache.NewGeocoding(filepath.Join(dataDir, config.GeocodingCacheFile), cfg.GeocodingCacheDays, cacheLogger),
		routes:    cache.NewRoutes(filepath.Join(dataDir, config.RoutesCacheFile), cfg.RouteCacheDays, cacheLogger),
		units:     cfg.Units,
		language:  cfg.Language,
		logger:    logging.ComponentLogger(logger, "plugin"),
	}
}

// PlanRouteRequest is the plan_route service input.
type PlanRouteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Profile     string `json:"profile,omitempty"`
}

// Place pairs an input address with its resolved coordinates.
type Place struct {
	Address     string          `json:"address"`
	Coordinates ors.Coordinates `json:"coordinates"`
}

// PlanResult is the plan_route service response.
type PlanResult struct {
	Origin      Place           `json:"origin"`
	Destination Place           `json:"destination"`
	Distance    float64         `json:"distance"`
	Duration    float64         `json:"duration"`
	Geometry    json.RawMessage `json:"geometry,omitempty"`
	Segments    []ors.Segment   `json:"segments"`
	Profile     string          `json:"profile"`
}

// PlanRoute geocodes both addresses and computes directions between them,
// consulting the caches first and writing fresh results through on a miss.
func (e *Entry) PlanRoute(ctx context.Context, req PlanRouteRequest) (*PlanResult, error) {
	profile := req.Profile
	if profile == "" {
		profile = config.DefaultProfile
	}
	if !config.ValidProfile(profile) {
		return nil, fmt.Errorf("unknown profile %q", profile)
	}

	log := e.logger.With().Str("trace_id", logging.GetOrGenerateTraceID(ctx)).Logger()

	originCoords, err := e.resolveAddress(ctx, log, req.Origin, "origin")
	if err != nil {
		return nil, err
	}
	destCoords, err := e.resolveAddress(ctx, log, req.Destination, "destination")
	if err != nil {
		return nil, err
	}

	routeRaw, ok := e.routes.Route(originCoords, destCoords, profile, e.units)
	if !ok {
		log.Debug().Str("profile", profile).Msg("route cache miss")
		route, dirErr := e.api.Directions(ctx, originCoords, destCoords, profile, e.units, e.language)
		if dirErr != nil {
			return nil, fmt.Errorf("route calculation failed: %w", dirErr)
		}

		routeRaw, err = json.Marshal(route)
		if err != nil {
			return nil, fmt.Errorf("failed to encode route: %w", err)
		}
		e.routes.SetRoute(routeRaw, originCoords, destCoords, profile, e.units)
		log.Info().Msg("route calculated and cached")
	} else {
		log.Info().Msg("route retrieved from cache")
	}

	var route ors.Route
	if err := json.Unmarshal(routeRaw, &route); err != nil {
		return nil, fmt.Errorf("failed to decode route: %w", err)
	}

	return &PlanResult{
		Origin:      Place{Address: req.Origin, Coordinates: originCoords},
		Destination: Place{Address: req.Destination, Coordinates: destCoords},
		Distance:    route.Summary.Distance,
		Duration:    route.Summary.Duration,
		Geometry:    route.Geometry,
		Segments:    route.Segments,
		Profile:     profile,
	}, nil
}

// resolveAddress turns an address into coordinates, cache first.
func (e *Entry) resolveAddress(ctx context.Context, log zerolog.Logger, address, role string) (ors.Coordinates, error) {
	if coords, ok := e.geocoding.Coordinates(address); ok {
		log.Debug().Str("role", role).Str("address", address).Msg("geocoded from cache")
		return coords, nil
	}

	coords, err := e.api.Geocode(ctx, address)
	if err != nil {
		return ors.Coordinates{}, fmt.Errorf("failed to geocode %s %q: %w", role, address, err)
	}

	e.geocoding.SetCoordinates(address, coords)
	log.Info().Str("role", role).Str("address", address).Msg("geocoded and cached")
	return coords, nil
}

// Cache scopes for ClearCache.
const (
	ScopeGeocoding = "geocoding"
	ScopeRoutes    = "routes"
	ScopeAll       = "all"
)

// ClearCache wipes the selected cache(s).
func (e *Entry) ClearCache(scope string) error {
	switch scope {
	case ScopeGeocoding:
		e.geocoding.Clear()
	case ScopeRoutes:
		e.routes.Clear()
	case ScopeAll:
		e.geocoding.Clear()
		e.routes.Clear()
	default:
		return fmt.Errorf("unknown cache scope %q", scope)
	}
	e.logger.Info().Str("scope", scope).Msg("cleared cache")
	return nil
}

// UpdateOptions applies changed options at runtime: both cache TTLs are
// re-applied (evicting whatever the new TTLs no longer allow) and the
// units/language preferences are swapped.
func (e *Entry) UpdateOptions(cfg *config.Config) {
	e.geocoding.UpdateTTL(cfg.GeocodingCacheDays)
	e.routes.UpdateTTL(cfg.RouteCacheDays)
	e.units = cfg.Units
	e.language = cfg.Language
	e.logger.Info().
		Int("geocoding_cache_days", cfg.GeocodingCacheDays).
		Int("route_cache_days", cfg.RouteCacheDays).
		Str("units", cfg.Units).
		Str("language", cfg.Language).
		Msg("updated options")
}

// GeocodingCache exposes the geocoding cache for inspection commands.
func (e *Entry) GeocodingCache() *cache.GeocodingCache {
	return e.geocoding
}

// RouteCache exposes the route cache for inspection commands.
func (e *Entry) RouteCache() *cache.RouteCache {
	return e.routes
}

// Units returns the active distance unit.
func (e *Entry) Units() string {
	return e.units
}
