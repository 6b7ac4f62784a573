package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/homeroute/homeroute/internal/cache"
	"github.com/homeroute/homeroute/internal/config"
	"github.com/homeroute/homeroute/internal/logging"
	"github.com/homeroute/homeroute/internal/plugin"
)

// openCaches builds both caches straight from config. Cache maintenance must
// work without an API key, so this deliberately skips plugin.Setup.
func openCaches(cmd *cobra.Command) (*cache.GeocodingCache, *cache.RouteCache, error) {
	dir := configDir(cmd)
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, err
	}

	cacheLogger := logging.ComponentLogger(logger, "cache")
	geocoding := cache.NewGeocoding(filepath.Join(dir, config.GeocodingCacheFile), cfg.GeocodingCacheDays, cacheLogger)
	routes := cache.NewRoutes(filepath.Join(dir, config.RoutesCacheFile), cfg.RouteCacheDays, cacheLogger)
	return geocoding, routes, nil
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "clear [geocoding|routes|all]",
		Short:     "Clear the persistent caches",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{plugin.ScopeGeocoding, plugin.ScopeRoutes, plugin.ScopeAll},
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := plugin.ScopeAll
			if len(args) == 1 {
				scope = args[0]
			}

			geocoding, routes, err := openCaches(cmd)
			if err != nil {
				return err
			}

			switch scope {
			case plugin.ScopeGeocoding:
				geocoding.Clear()
			case plugin.ScopeRoutes:
				routes.Clear()
			case plugin.ScopeAll:
				geocoding.Clear()
				routes.Clear()
			default:
				return fmt.Errorf("unknown cache scope %q", scope)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s cache(s)\n", scope)
			return nil
		},
	}
}

// NewCacheStatsCmd creates the cache stats command.
func NewCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts and file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			geocoding, routes, err := openCaches(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Geocoding cache: %d entries (TTL %d days)\n  %s\n",
				geocoding.Len(), geocoding.TTLDays(), geocoding.Path())
			fmt.Fprintf(out, "Route cache:     %d entries (TTL %d days)\n  %s\n",
				routes.Len(), routes.TTLDays(), routes.Path())
			return nil
		},
	}
}
