package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/homeroute/homeroute/internal/config"
	"github.com/homeroute/homeroute/internal/logging"
	"github.com/homeroute/homeroute/internal/plugin"
	"github.com/homeroute/homeroute/pkg/version"
)

// NewPlanCmd creates the plan command: geocode two addresses and compute
// directions between them, cache-first.
func NewPlanCmd() *cobra.Command {
	var (
		profile    string
		units      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "plan ORIGIN DESTINATION",
		Short: "Plan a route between two addresses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := configDir(cmd)
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if units != "" {
				cfg.Units = units
			}

			entry, err := plugin.Setup(cfg, dir, version.GetVersion(), logger)
			if err != nil {
				return err
			}

			payload, err := json.Marshal(plugin.PlanRouteRequest{
				Origin:      args[0],
				Destination: args[1],
				Profile:     profile,
			})
			if err != nil {
				return err
			}

			ctx := logging.ContextWithTraceID(cmd.Context(), logging.NewTraceID())
			raw, err := entry.HandleCall(ctx, plugin.ServicePlanRoute, payload)
			if err != nil {
				return err
			}

			if jsonOutput {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			}

			var result plugin.PlanResult
			if err := json.Unmarshal(raw, &result); err != nil {
				return err
			}
			return renderPlan(cmd.OutOrStdout(), &result, cfg.Units, isTerminal(os.Stdout))
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "transportation profile (default "+config.DefaultProfile+")")
	cmd.Flags().StringVar(&units, "units", "", "distance units: m, km, or mi (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the raw plan result as JSON")

	return cmd
}
