package appointment

import (
	"fmt"

	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/appointments/application/queries"
	"github.com/inheaven/petservice/internal/appointments/domain"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <appointment-id>",
	Short:   "Show an appointment",
	Aliases: []string{"get"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := cli.ParseID("appointment", args[0])
		if err != nil {
			return err
		}

		appointment, err := app.GetAppointmentHandler.Handle(cmd.Context(), queries.GetAppointmentQuery{AppointmentID: id})
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}
		return cli.PrintAppointment(cmd.OutOrStdout(), *appointment)
	},
}

var ownerID string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments",
	Long: `List every appointment, or only those booked by one customer.

Examples:
  petservice appointment list
  petservice appointment list --owner 550e8400-...`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		owner, err := cli.ParseOptionalID("owner", ownerID)
		if err != nil {
			return err
		}

		appointments, err := app.ListAppointmentsHandler.Handle(cmd.Context(), queries.ListAppointmentsQuery{OwnerID: owner})
		if err != nil {
			return fmt.Errorf("failed to list appointments: %w", err)
		}
		return cli.PrintAppointments(cmd.OutOrStdout(), appointments)
	},
}

var searchStatus string

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search appointments by booking name",
	Long: `Search appointments whose booking name contains the text, ignoring
case. Narrow the result with --status.

Examples:
  petservice appointment search jane
  petservice appointment search doe --status CHECKED_IN`,
	Aliases: []string{"find"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		query := queries.SearchAppointmentsQuery{Name: args[0]}
		if searchStatus != "" {
			status, err := domain.ParseStatus(searchStatus)
			if err != nil {
				return err
			}
			query.Status = &status
		}

		appointments, err := app.SearchAppointmentsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to search appointments: %w", err)
		}
		return cli.PrintAppointments(cmd.OutOrStdout(), appointments)
	},
}

func init() {
	listCmd.Flags().StringVarP(&ownerID, "owner", "o", "", "only appointments booked by this customer")
	searchCmd.Flags().StringVarP(&searchStatus, "status", "s", "", "filter by status (SCHEDULED, CHECKED_IN, IN_PROGRESS, COMPLETED, CANCELLED)")
}
