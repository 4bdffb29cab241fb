package appointment

import (
	"github.com/spf13/cobra"
)

// Cmd is the appointment command group
var Cmd = &cobra.Command{
	Use:     "appointment",
	Short:   "Manage appointments",
	Long:    `Book, update, check in, complete and cancel pet appointments.`,
	Aliases: []string{"appt"},
}

func init() {
	Cmd.AddCommand(bookCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(searchCmd)
	Cmd.AddCommand(checkInCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(returnCmd)
	Cmd.AddCommand(noteCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(deleteCmd)
}
