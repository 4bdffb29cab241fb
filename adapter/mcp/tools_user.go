package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/identity/application/commands"
	"github.com/inheaven/petservice/internal/identity/application/queries"
)

type userListInput struct {
	Role string `json:"role,omitempty"`
}

type userRegisterInput struct {
	Username string `json:"username" jsonschema:"required"`
	FullName string `json:"full_name" jsonschema:"required"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

type userTools struct {
	app *cli.App
}

func registerUserTools(srv *mcp.Server, t userTools) {
	srv.Tool("user.list").
		Description("List users, optionally filtered by role (DOCTOR, CUSTOMER, ADMIN)").
		Handler(t.list)

	srv.Tool("user.register").
		Description("Register a doctor, customer or admin").
		Handler(t.register)
}

func (t userTools) list(ctx context.Context, input userListInput) ([]queries.UserDTO, error) {
	if t.app.ListUsersHandler == nil {
		return nil, errNoDatabase
	}
	return t.app.ListUsersHandler.Handle(ctx, queries.ListUsersQuery{Role: input.Role})
}

func (t userTools) register(ctx context.Context, input userRegisterInput) (*queries.UserDTO, error) {
	if t.app.RegisterUserHandler == nil {
		return nil, errNoDatabase
	}
	role := input.Role
	if role == "" {
		role = "CUSTOMER"
	}
	u, err := t.app.RegisterUserHandler.Handle(ctx, commands.RegisterUserCommand{
		Username: input.Username,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	dto := queries.ToUserDTO(u)
	return &dto, nil
}
