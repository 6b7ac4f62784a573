// Package cli implements the homeroute command-line surface: plan, cache,
// validate, and config subcommands over the plugin entry.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/homeroute/homeroute/internal/config"
	"github.com/homeroute/homeroute/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the homeroute CLI.
// It wires up logging and the plan, cache, validate, and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "homeroute",
		Short:   "Address-to-directions routing with persistent caching",
		Long:    "HomeRoute: turn free-text addresses into driving, walking, or cycling directions, minimizing API calls through persistent TTL caches",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "configuration directory (default $HOMEROUTE_CONFIG_DIR or ~/.homeroute)")
	cmd.AddCommand(NewPlanCmd(), newCacheCmd(), NewValidateCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Plan a driving route between two addresses
  homeroute plan "Berlin Hauptbahnhof" "Brandenburger Tor"

  # Cycle instead, with miles
  homeroute plan "Berlin Hauptbahnhof" "Brandenburger Tor" --profile cycling-regular --units mi

  # Emit the raw result as JSON
  homeroute plan "Berlin Hauptbahnhof" "Brandenburger Tor" --json

  # Clear the route cache only
  homeroute cache clear routes

  # Show cache entry counts
  homeroute cache stats

  # Check the configured API key
  homeroute validate

  # Write a starter configuration file
  homeroute config init`

// setupLogging builds the package logger from config with CLI overrides.
func setupLogging(cmd *cobra.Command) error {
	cfg, err := config.Load(configDir(cmd))
	if err != nil {
		return err
	}

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
	}

	logger = logging.ComponentLogger(logging.NewLogger(logCfg), "cli")
	return nil
}

// configDir resolves the configuration directory, preferring the CLI flag.
func configDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("config-dir"); dir != "" {
		return dir
	}
	return config.Dir()
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Cache management commands"}
	cmd.AddCommand(NewCacheClearCmd(), NewCacheStatsCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd())
	return cmd
}
