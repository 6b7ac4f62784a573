package cache

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// RouteCache maps (origin, destination, profile, units) tuples to route
// documents. The route payload passes through verbatim; this cache neither
// validates nor transforms it. Any difference in any of the four arguments,
// including the units label, yields a distinct entry.
type RouteCache struct {
	*PersistentCache
}

// NewRoutes creates a route cache bound to path.
func NewRoutes(path string, ttlDays int, logger zerolog.Logger) *RouteCache {
	return &RouteCache{PersistentCache: New(path, ttlDays, logger)}
}

// Route returns the cached route document for the given lookup tuple.
func (c *RouteCache) Route(origin, destination [2]float64, profile, units string) (json.RawMessage, bool) {
	return c.Get(CoordinateArg(origin), CoordinateArg(destination), profile, units)
}

// SetRoute caches a route document under the given lookup tuple.
func (c *RouteCache) SetRoute(route json.RawMessage, origin, destination [2]float64, profile, units string) {
	c.Set(route, CoordinateArg(origin), CoordinateArg(destination), profile, units)
}
