package user

import (
	"fmt"

	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/identity/application/commands"
	"github.com/inheaven/petservice/internal/identity/application/queries"
	"github.com/spf13/cobra"
)

// Cmd is the user command group
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Manage doctors, customers and admins",
}

var (
	fullName string
	email    string
	phone    string
	role     string
)

var addCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Register a user",
	Long: `Register a user. Usernames are 3 to 50 characters of lowercase
letters, digits, dot, underscore or dash.

Examples:
  petservice user add drsmith --name "Dr. Smith" --role DOCTOR
  petservice user add jane --name "Jane Doe" --email jane@example.com`,
	Aliases: []string{"register"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		u, err := app.RegisterUserHandler.Handle(cmd.Context(), commands.RegisterUserCommand{
			Username: args[0],
			FullName: fullName,
			Email:    email,
			Phone:    phone,
			Role:     role,
		})
		if err != nil {
			return fmt.Errorf("failed to register user: %w", err)
		}
		return cli.PrintUser(cmd.OutOrStdout(), queries.ToUserDTO(u))
	},
}

var listRole string

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List users",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		users, err := app.ListUsersHandler.Handle(cmd.Context(), queries.ListUsersQuery{Role: listRole})
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return cli.PrintUsers(cmd.OutOrStdout(), users)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := cli.ParseID("user", args[0])
		if err != nil {
			return err
		}

		u, err := app.GetUserHandler.Handle(cmd.Context(), queries.GetUserQuery{UserID: id})
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		return cli.PrintUser(cmd.OutOrStdout(), *u)
	},
}

func init() {
	addCmd.Flags().StringVarP(&fullName, "name", "n", "", "full name")
	addCmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	addCmd.Flags().StringVarP(&phone, "phone", "p", "", "phone number")
	addCmd.Flags().StringVarP(&role, "role", "r", "CUSTOMER", "role (DOCTOR, CUSTOMER, ADMIN)")
	_ = addCmd.MarkFlagRequired("name")

	listCmd.Flags().StringVarP(&listRole, "role", "r", "", "only users with this role")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
}
