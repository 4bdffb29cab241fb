package cli

import (
	"errors"
	"fmt"

	"github.com/inheaven/petservice/pkg/observability"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database and cache connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if app.Container == nil || app.Container.Health == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}

		report := app.Container.Health.Check(cmd.Context())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "status: %s\n", report.Status)
		for name, check := range report.Checks {
			line := fmt.Sprintf("  %-10s %s", name, check.Status)
			if check.Message != "" {
				line += " (" + check.Message + ")"
			}
			fmt.Fprintln(out, line)
		}
		if report.Status == observability.HealthStatusUnhealthy {
			return errors.New("unhealthy")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
