package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/appointments/application/commands"
	"github.com/inheaven/petservice/internal/appointments/domain"
	"github.com/spf13/cobra"
)

// transition builds a command that moves one appointment to another status.
func transition(use, short, verb string, aliases []string, run func(ctx context.Context, app *cli.App, id uuid.UUID) (*domain.Appointment, error)) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <appointment-id>",
		Short:   short,
		Aliases: aliases,
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

			appointment, err := run(cmd.Context(), app, id)
			if err != nil {
				return fmt.Errorf("failed to %s appointment: %w", verb, err)
			}
			return cli.PrintDescribed(cmd.Context(), cmd.OutOrStdout(), app, appointment)
		},
	}
}

var checkInCmd = transition("check-in", "Check a pet in and add it to the waiting queue", "check in",
	[]string{"checkin", "arrive"},
	func(ctx context.Context, app *cli.App, id uuid.UUID) (*domain.Appointment, error) {
		return app.CheckInHandler.Handle(ctx, commands.CheckInCommand{AppointmentID: id})
	})

var returnCmd = transition("return", "Hand an in-progress appointment back to the queue", "return",
	[]string{"requeue"},
	func(ctx context.Context, app *cli.App, id uuid.UUID) (*domain.Appointment, error) {
		return app.ReturnToQueueHandler.Handle(ctx, commands.ReturnToQueueCommand{AppointmentID: id})
	})

var cancelCmd = transition("cancel", "Cancel an appointment that has not been seen", "cancel",
	nil,
	func(ctx context.Context, app *cli.App, id uuid.UUID) (*domain.Appointment, error) {
		return app.CancelAppointmentHandler.Handle(ctx, commands.CancelAppointmentCommand{AppointmentID: id})
	})

var completeDoctor string

var completeCmd = transition("complete", "Finish an in-progress appointment", "complete",
	[]string{"done"},
	func(ctx context.Context, app *cli.App, id uuid.UUID) (*domain.Appointment, error) {
		doctorID, err := cli.ParseID("doctor", completeDoctor)
		if err != nil {
			return nil, err
		}
		return app.CompleteAppointmentHandler.Handle(ctx, commands.CompleteAppointmentCommand{
			AppointmentID: id,
			DoctorID:      doctorID,
		})
	})

var noteCmd = &cobra.Command{
	Use:   "note <appointment-id> <text>",
	Short: "Replace the visit note of an in-progress appointment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := cli.ParseID("appointment", args[0])
		if err != nil {
			return err
		}

		appointment, err := app.UpdateNoteHandler.Handle(cmd.Context(), commands.UpdateNoteCommand{
			AppointmentID: id,
			Note:          args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		return cli.PrintDescribed(cmd.Context(), cmd.OutOrStdout(), app, appointment)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <appointment-id>",
	Short:   "Delete a scheduled appointment",
	Aliases: []string{"rm"},
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

		if err := app.DeleteAppointmentHandler.Handle(cmd.Context(), commands.DeleteAppointmentCommand{AppointmentID: id}); err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Appointment %s deleted.\n", id)
		return nil
	},
}

func init() {
	completeCmd.Flags().StringVarP(&completeDoctor, "doctor", "d", "", "doctor completing the visit")
	_ = completeCmd.MarkFlagRequired("doctor")
}
