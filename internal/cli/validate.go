package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homeroute/homeroute/internal/config"
	"github.com/homeroute/homeroute/internal/ors"
)

// NewValidateCmd creates the validate command, which probes the routing API
// with the configured key.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configured API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configDir(cmd))
			if err != nil {
				return err
			}
			if cfg.APIKey == "" {
				return config.ErrMissingAPIKey
			}

			var opts []ors.Option
			if cfg.BaseURL != "" {
				opts = append(opts, ors.WithBaseURL(cfg.BaseURL))
			}
			client := ors.NewClient(cfg.APIKey, logger, opts...)
			if err := client.ValidateKey(cmd.Context()); err != nil {
				return fmt.Errorf("API key validation failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "API key is valid")
			return nil
		},
	}
}
