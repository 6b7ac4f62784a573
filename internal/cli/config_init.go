package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/homeroute/homeroute/internal/config"
)

// NewConfigInitCmd creates the config init command, which writes a starter
// configuration file with defaults.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := configDir(cmd)
			path := config.Path(dir)

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.New()
			if err := cfg.Save(dir); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Set api_key (or HOMEROUTE_API_KEY) before planning routes.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
