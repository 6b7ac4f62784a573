// Package config holds homeroute configuration: the routing API credentials,
// unit/language preferences, and the cache TTL options surfaced to users.
//
// Configuration is loaded from $HOMEROUTE_CONFIG_DIR/config.yaml (default
// ~/.homeroute/config.yaml) with environment variable overrides applied on
// top. The config directory also hosts the persistent cache files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults and option bounds.
const (
	// DefaultGeocodingCacheDays is the default geocoding cache TTL.
	DefaultGeocodingCacheDays = 30

	// DefaultRouteCacheDays is the default route cache TTL.
	DefaultRouteCacheDays = 7

	// MaxCacheDays is the upper bound for both cache TTL options.
	// 0 disables the cache entirely.
	MaxCacheDays = 365

	// DefaultUnits is the default distance unit.
	DefaultUnits = "km"

	// DefaultLanguage is the default directions language.
	DefaultLanguage = "en"

	// DefaultProfile is the default transportation profile.
	DefaultProfile = "driving-car"
)

// Cache file names inside the config directory.
const (
	GeocodingCacheFile = ".homeroute_geocoding_cache.json"
	RoutesCacheFile    = ".homeroute_routes_cache.json"
)

// Environment variable overrides.
const (
	EnvConfigDir          = "HOMEROUTE_CONFIG_DIR"
	EnvAPIKey             = "HOMEROUTE_API_KEY"
	EnvGeocodingCacheDays = "HOMEROUTE_GEOCODING_CACHE_DAYS"
	EnvRouteCacheDays     = "HOMEROUTE_ROUTE_CACHE_DAYS"
)

// configFileName is the YAML file name inside the config directory.
const configFileName = "config.yaml"

// Profiles are the supported transportation profiles.
var Profiles = []string{ //nolint:gochecknoglobals // Static option list
	"driving-car",
	"driving-hgv",
	"cycling-regular",
	"foot-walking",
	"wheelchair",
}

// Units are the supported distance units.
var Units = []string{"m", "km", "mi"} //nolint:gochecknoglobals // Static option list

// Validation errors.
var (
	ErrMissingAPIKey = errors.New("api_key is required")
	ErrInvalidTTL    = fmt.Errorf("cache TTL must be between 0 and %d days", MaxCacheDays)
)

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Config is the homeroute configuration document.
type Config struct {
	// APIKey authenticates against the routing service.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the routing API endpoint, e.g. for a self-hosted
	// instance. Empty means the hosted service.
	BaseURL string `yaml:"base_url,omitempty"`

	// Units is the distance unit for directions ("m", "km", "mi").
	Units string `yaml:"units"`

	// Language is the directions language code.
	Language string `yaml:"language"`

	// GeocodingCacheDays is the geocoding cache TTL in days (0 = disabled).
	GeocodingCacheDays int `yaml:"geocoding_cache_days"`

	// RouteCacheDays is the route cache TTL in days (0 = disabled).
	RouteCacheDays int `yaml:"route_cache_days"`

	Logging LoggingConfig `yaml:"logging"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Units:              DefaultUnits,
		Language:           DefaultLanguage,
		GeocodingCacheDays: DefaultGeocodingCacheDays,
		RouteCacheDays:     DefaultRouteCacheDays,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Dir resolves the homeroute configuration directory: $HOMEROUTE_CONFIG_DIR
// when set, otherwise ~/.homeroute. The directory is not created.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".homeroute"
	}
	return filepath.Join(home, ".homeroute")
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, configFileName)
}

// Load reads configuration from dir, starting from defaults. A missing file
// is not an error; the defaults plus environment overrides are returned. A
// malformed file is an error since silently dropping user settings would be
// worse than failing the command.
func Load(dir string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(Path(dir))
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variable overrides. Invalid numeric values
// are ignored rather than failing the load, matching how TTL overrides
// degrade elsewhere in the system.
func (c *Config) applyEnv() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.APIKey = key
	}
	if v := os.Getenv(EnvGeocodingCacheDays); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days >= 0 && days <= MaxCacheDays {
			c.GeocodingCacheDays = days
		}
	}
	if v := os.Getenv(EnvRouteCacheDays); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days >= 0 && days <= MaxCacheDays {
			c.RouteCacheDays = days
		}
	}
}

// Validate checks option values. It is called before the plugin entry is set
// up, not during Load, so commands that never reach the API (config init,
// cache clear) still work on an incomplete config.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.GeocodingCacheDays < 0 || c.GeocodingCacheDays > MaxCacheDays {
		return fmt.Errorf("%w: geocoding_cache_days=%d", ErrInvalidTTL, c.GeocodingCacheDays)
	}
	if c.RouteCacheDays < 0 || c.RouteCacheDays > MaxCacheDays {
		return fmt.Errorf("%w: route_cache_days=%d", ErrInvalidTTL, c.RouteCacheDays)
	}
	if !contains(Units, c.Units) {
		return fmt.Errorf("invalid units %q (expected one of %v)", c.Units, Units)
	}
	return nil
}

// Save writes the config document to dir, creating the directory as needed.
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ValidProfile reports whether profile is a supported transportation profile.
func ValidProfile(profile string) bool {
	return contains(Profiles, profile)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
