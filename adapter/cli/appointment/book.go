package appointment

import (
	"fmt"

	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/appointments/application/commands"
	"github.com/inheaven/petservice/internal/appointments/domain"
	"github.com/spf13/cobra"
)

type bookingFlags struct {
	name            string
	petName         string
	petType         string
	breed           string
	healthStatus    string
	healthHistory   string
	note            string
	appointmentTime string
	doctor          string
}

var (
	customerID string
	booking    bookingFlags
)

func (f *bookingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "owner name as shown at the front desk")
	cmd.Flags().StringVar(&f.petName, "pet", "", "pet name")
	cmd.Flags().StringVar(&f.petType, "type", "", "pet type (dog, cat, ...)")
	cmd.Flags().StringVar(&f.breed, "breed", "", "breed")
	cmd.Flags().StringVar(&f.healthStatus, "health", "", "current health status")
	cmd.Flags().StringVar(&f.healthHistory, "history", "", "health history")
	cmd.Flags().StringVar(&f.note, "note", "", "booking note")
	cmd.Flags().StringVarP(&f.appointmentTime, "time", "t", "", "appointment time (RFC 3339 or YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVarP(&f.doctor, "doctor", "d", "", "preferred doctor ID")
}

func (f *bookingFlags) details() (domain.BookingDetails, error) {
	details := domain.BookingDetails{
		Name:          f.name,
		PetName:       f.petName,
		PetType:       f.petType,
		Breed:         f.breed,
		HealthStatus:  f.healthStatus,
		HealthHistory: f.healthHistory,
		Note:          f.note,
	}
	if f.appointmentTime != "" {
		t, err := cli.ParseTime(f.appointmentTime)
		if err != nil {
			return domain.BookingDetails{}, err
		}
		details.AppointmentTime = t
	}
	doctorID, err := cli.ParseOptionalID("doctor", f.doctor)
	if err != nil {
		return domain.BookingDetails{}, err
	}
	details.PreferredDoctorID = doctorID
	return details, nil
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book an appointment for a customer",
	Long: `Book a new appointment. The appointment starts SCHEDULED and joins the
queue once the pet is checked in.

Examples:
  petservice appointment book --customer 550e8400-... --name "Jane Doe" \
    --pet Rex --type dog --health "limping" --time "2026-10-15 09:30"`,
	Aliases: []string{"create", "new"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		owner, err := cli.ParseID("customer", customerID)
		if err != nil {
			return err
		}
		details, err := booking.details()
		if err != nil {
			return err
		}

		appointment, err := app.CreateAppointmentHandler.Handle(cmd.Context(), commands.CreateAppointmentCommand{
			CustomerID: owner,
			Details:    details,
		})
		if err != nil {
			return fmt.Errorf("failed to book appointment: %w", err)
		}

		return cli.PrintDescribed(cmd.Context(), cmd.OutOrStdout(), app, appointment)
	},
}

func init() {
	bookCmd.Flags().StringVarP(&customerID, "customer", "c", "", "customer (owner) user ID")
	booking.register(bookCmd)
	_ = bookCmd.MarkFlagRequired("customer")
}
