package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	appointmentQueries "github.com/inheaven/petservice/internal/appointments/application/queries"
	appointmentDomain "github.com/inheaven/petservice/internal/appointments/domain"
	identityQueries "github.com/inheaven/petservice/internal/identity/application/queries"
)

// DisplayTimeLayout is used for every timestamp the CLI prints.
const DisplayTimeLayout = "2006-01-02 15:04"

var jsonOutput bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// SetJSONOutput toggles JSON output; tests use it instead of the flag.
func SetJSONOutput(enabled bool) {
	jsonOutput = enabled
}

// ErrNotInitialized is returned when a command runs without a database.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// RequireApp returns the global app or ErrNotInitialized.
func RequireApp() (*App, error) {
	if cliApp == nil {
		return nil, ErrNotInitialized
	}
	return cliApp, nil
}

// ParseID parses a command-line identifier.
func ParseID(kind, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID: %w", kind, err)
	}
	return id, nil
}

// ParseOptionalID parses value, returning nil when it is blank.
func ParseOptionalID(kind, value string) (*uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	id, err := ParseID(kind, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseTime accepts RFC 3339 or the display layout in local time.
func ParseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(DisplayTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, use RFC 3339 or YYYY-MM-DD HH:MM", value)
	}
	return t, nil
}

// PrintAppointment writes a single appointment.
func PrintAppointment(w io.Writer, a appointmentQueries.AppointmentDTO) error {
	if jsonOutput {
		return printJSON(w, a)
	}
	fmt.Fprintf(w, "%s  %s (%s)\n", statusBadge(a.Status), a.PetName, a.PetType)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  ID:        %s\n", a.ID)
	fmt.Fprintf(w, "  Owner:     %s\n", a.Name)
	if a.UserName != "" && a.UserName != a.Name {
		fmt.Fprintf(w, "  Booked by: %s\n", a.UserName)
	}
	fmt.Fprintf(w, "  Breed:     %s\n", a.Breed)
	fmt.Fprintf(w, "  Health:    %s\n", a.HealthStatus)
	fmt.Fprintf(w, "  Time:      %s\n", a.AppointmentTime.Local().Format(DisplayTimeLayout))
	if a.CheckInTime != nil {
		fmt.Fprintf(w, "  Checked in: %s\n", a.CheckInTime.Local().Format(DisplayTimeLayout))
	}
	if a.PreferredDoctorID != nil {
		fmt.Fprintf(w, "  Preferred: %s\n", displayUser(a.PreferredDoctorName, *a.PreferredDoctorID))
	}
	if a.AssignedDoctorID != nil {
		fmt.Fprintf(w, "  Doctor:    %s\n", displayUser(a.AssignedDoctorName, *a.AssignedDoctorID))
	}
	if a.Note != "" {
		fmt.Fprintf(w, "  Note:      %s\n", a.Note)
	}
	return nil
}

// PrintDescribed resolves the user names of a command result and writes it.
func PrintDescribed(ctx context.Context, w io.Writer, app *App, a *appointmentDomain.Appointment) error {
	dto, err := app.Describe(ctx, a)
	if err != nil {
		return err
	}
	return PrintAppointment(w, dto)
}

// PrintAppointments writes a compact appointment listing.
func PrintAppointments(w io.Writer, appointments []appointmentQueries.AppointmentDTO) error {
	if jsonOutput {
		return printJSON(w, appointments)
	}
	if len(appointments) == 0 {
		fmt.Fprintln(w, "No appointments found.")
		return nil
	}
	fmt.Fprintf(w, "Appointments (%d):\n", len(appointments))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, a := range appointments {
		fmt.Fprintf(w, "%s %s - %s\n", statusBadge(a.Status), a.PetName, a.Name)
		fmt.Fprintf(w, "   ID: %s  at %s\n", a.ID, a.AppointmentTime.Local().Format(DisplayTimeLayout))
	}
	return nil
}

// PrintQueue writes the waiting queue in dispatch order.
func PrintQueue(w io.Writer, entries []appointmentQueries.QueueEntryDTO) error {
	if jsonOutput {
		return printJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "Queue is empty.")
		return nil
	}
	fmt.Fprintf(w, "Waiting (%d):\n", len(entries))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, e := range entries {
		checkIn := ""
		if e.CheckInTime != nil {
			checkIn = e.CheckInTime.Local().Format(DisplayTimeLayout)
		}
		fmt.Fprintf(w, "%3d. %s (%s) checked in %s\n", e.Position, e.PetName, e.Name, checkIn)
		if e.PreferredDoctorID != nil {
			fmt.Fprintf(w, "     prefers %s\n", displayUser(e.PreferredDoctorName, *e.PreferredDoctorID))
		}
	}
	return nil
}

// PrintUser writes a single user.
func PrintUser(w io.Writer, u identityQueries.UserDTO) error {
	if jsonOutput {
		return printJSON(w, u)
	}
	fmt.Fprintf(w, "%s (%s)\n", u.FullName, u.Role)
	fmt.Fprintf(w, "  ID:       %s\n", u.ID)
	fmt.Fprintf(w, "  Username: %s\n", u.Username)
	if u.Email != "" {
		fmt.Fprintf(w, "  Email:    %s\n", u.Email)
	}
	if u.Phone != "" {
		fmt.Fprintf(w, "  Phone:    %s\n", u.Phone)
	}
	return nil
}

// PrintUsers writes a compact user listing.
func PrintUsers(w io.Writer, users []identityQueries.UserDTO) error {
	if jsonOutput {
		return printJSON(w, users)
	}
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(w, "%-9s %-20s %s  %s\n", u.Role, u.Username, u.ID, u.FullName)
	}
	return nil
}

func displayUser(name string, id uuid.UUID) string {
	if name == "" {
		return id.String()
	}
	return fmt.Sprintf("%s (%s)", name, id)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func statusBadge(status string) string {
	switch status {
	case "CHECKED_IN":
		return "[~]"
	case "IN_PROGRESS":
		return "[>]"
	case "COMPLETED":
		return "[x]"
	case "CANCELLED":
		return "[-]"
	default:
		return "[ ]"
	}
}
