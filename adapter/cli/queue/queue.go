package queue

import (
	"fmt"

	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/appointments/application/commands"
	"github.com/inheaven/petservice/internal/appointments/application/queries"
	"github.com/spf13/cobra"
)

// Cmd is the queue command group
var Cmd = &cobra.Command{
	Use:   "queue",
	Short: "Work the waiting queue",
	Long:  `Inspect checked-in pets and hand the next one to a doctor.`,
}

var doctorID string

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Take the next waiting pet",
	Long: `Assign the next waiting appointment to a doctor.

Pets waiting for this doctor, or for no one in particular, are offered
first-come first-served by check-in time.

Examples:
  petservice queue next --doctor 550e8400-...`,
	Aliases: []string{"dispatch"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		doctor, err := cli.ParseID("doctor", doctorID)
		if err != nil {
			return err
		}

		appointment, err := app.DispatchNextHandler.Handle(cmd.Context(), commands.DispatchNextCommand{DoctorID: doctor})
		if err != nil {
			return fmt.Errorf("failed to dispatch: %w", err)
		}
		return cli.PrintDescribed(cmd.Context(), cmd.OutOrStdout(), app, appointment)
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show checked-in pets in dispatch order",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		entries, err := app.ListQueueHandler.Handle(cmd.Context(), queries.ListQueueQuery{})
		if err != nil {
			return fmt.Errorf("failed to list queue: %w", err)
		}
		return cli.PrintQueue(cmd.OutOrStdout(), entries)
	},
}

func init() {
	nextCmd.Flags().StringVarP(&doctorID, "doctor", "d", "", "doctor taking the next pet")
	_ = nextCmd.MarkFlagRequired("doctor")

	Cmd.AddCommand(nextCmd)
	Cmd.AddCommand(listCmd)
}
