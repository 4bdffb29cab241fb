package appointment

import (
	"fmt"

	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/appointments/application/commands"
	"github.com/inheaven/petservice/internal/appointments/application/queries"
	"github.com/inheaven/petservice/internal/appointments/domain"
	"github.com/spf13/cobra"
)

var updateFlags bookingFlags

var updateCmd = &cobra.Command{
	Use:   "update <appointment-id>",
	Short: "Change the booking details of a scheduled appointment",
	Long: `Change booking details. Only the flags you pass are changed; the rest
keep their stored values. Appointments can only be edited while SCHEDULED.

Examples:
  petservice appointment update 550e8400-... --time "2026-10-16 14:00"`,
	Aliases: []string{"edit"},
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

		current, err := app.GetAppointmentHandler.Handle(cmd.Context(), queries.GetAppointmentQuery{AppointmentID: id})
		if err != nil {
			return fmt.Errorf("failed to load appointment: %w", err)
		}

		details, err := mergeDetails(cmd, *current)
		if err != nil {
			return err
		}

		appointment, err := app.UpdateAppointmentHandler.Handle(cmd.Context(), commands.UpdateAppointmentCommand{
			AppointmentID: id,
			Details:       details,
		})
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}

		return cli.PrintDescribed(cmd.Context(), cmd.OutOrStdout(), app, appointment)
	},
}

// mergeDetails overlays the flags the caller set onto the stored booking.
func mergeDetails(cmd *cobra.Command, current queries.AppointmentDTO) (domain.BookingDetails, error) {
	changed := cmd.Flags().Changed
	pick := func(flag, value, stored string) string {
		if changed(flag) {
			return value
		}
		return stored
	}

	merged := bookingFlags{
		name:          pick("name", updateFlags.name, current.Name),
		petName:       pick("pet", updateFlags.petName, current.PetName),
		petType:       pick("type", updateFlags.petType, current.PetType),
		breed:         pick("breed", updateFlags.breed, current.Breed),
		healthStatus:  pick("health", updateFlags.healthStatus, current.HealthStatus),
		healthHistory: pick("history", updateFlags.healthHistory, current.HealthHistory),
		note:          pick("note", updateFlags.note, current.Note),
	}
	if changed("time") {
		merged.appointmentTime = updateFlags.appointmentTime
	}
	if changed("doctor") {
		merged.doctor = updateFlags.doctor
	}

	details, err := merged.details()
	if err != nil {
		return domain.BookingDetails{}, err
	}
	if !changed("time") {
		details.AppointmentTime = current.AppointmentTime
	}
	return details, nil
}

func init() {
	updateFlags.register(updateCmd)
}
