package cache

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

// GeocodingCache maps free-text addresses to lon/lat coordinate pairs.
// Addresses are lowercased before key derivation so lookups are
// case-insensitive; the same normalization applies on both read and write
// paths.
type GeocodingCache struct {
	*PersistentCache
}

// NewGeocoding creates a geocoding cache bound to path.
func NewGeocoding(path string, ttlDays int, logger zerolog.Logger) *GeocodingCache {
	return &GeocodingCache{PersistentCache: New(path, ttlDays, logger)}
}

// Coordinates returns the cached (longitude, latitude) pair for address.
func (c *GeocodingCache) Coordinates(address string) ([2]float64, bool) {
	raw, ok := c.Get(strings.ToLower(address))
	if !ok {
		return [2]float64{}, false
	}

	// Stored as a plain JSON array; reconstruct the fixed-size pair.
	var seq []float64
	if err := json.Unmarshal(raw, &seq); err != nil || len(seq) != 2 {
		c.logger.Warn().Str("address", address).Msg("malformed cached coordinates, treating as miss")
		return [2]float64{}, false
	}
	return [2]float64{seq[0], seq[1]}, true
}

// SetCoordinates caches the coordinate pair for address.
func (c *GeocodingCache) SetCoordinates(address string, coords [2]float64) {
	// Stored as [lon, lat] since JSON has no fixed-size pair type.
	c.Set([]float64{coords[0], coords[1]}, strings.ToLower(address))
}
