package user

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/inheaven/petservice/adapter/cli"
	"github.com/inheaven/petservice/internal/app"
	"github.com/inheaven/petservice/internal/identity/application/queries"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/inheaven/petservice/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) {
	t.Helper()

	cfg := &config.Config{
		AppEnv:              "test",
		DatabaseDriver:      config.DriverSQLite,
		SQLitePath:          filepath.Join(t.TempDir(), "test.db"),
		DispatchMaxAttempts: 3,
	}
	container, err := app.NewContainer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(container.Close)

	cli.SetApp(cli.NewApp(container))
	cli.SetJSONOutput(true)
	t.Cleanup(func() {
		cli.SetApp(nil)
		cli.SetJSONOutput(false)
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(Cmd)

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(io.Discard)
	Cmd.SetArgs(args)
	err := Cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func TestAddCmd_RegistersUser(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "add", "DrSmith", "--name", "Dr. Smith", "--role", "doctor", "--email", "Smith@Clinic.example")
	require.NoError(t, err)

	var u queries.UserDTO
	require.NoError(t, json.Unmarshal([]byte(out), &u))
	assert.Equal(t, "drsmith", u.Username)
	assert.Equal(t, "DOCTOR", u.Role)
	assert.Equal(t, "smith@clinic.example", u.Email)

	out, err = run(t, "show", u.ID.String())
	require.NoError(t, err)
	var shown queries.UserDTO
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, u.ID, shown.ID)
}

func TestAddCmd_DefaultsToCustomer(t *testing.T) {
	setupTestApp(t)

	out, err := run(t, "add", "jane", "--name", "Jane Doe")
	require.NoError(t, err)

	var u queries.UserDTO
	require.NoError(t, json.Unmarshal([]byte(out), &u))
	assert.Equal(t, "CUSTOMER", u.Role)
}

func TestAddCmd_DuplicateUsername(t *testing.T) {
	setupTestApp(t)

	_, err := run(t, "add", "jane", "--name", "Jane Doe")
	require.NoError(t, err)

	_, err = run(t, "add", "jane", "--name", "Another Jane")
	require.Error(t, err)
	assert.ErrorIs(t, err, sharedDomain.ErrConflict)
}

func TestListCmd_FiltersByRole(t *testing.T) {
	setupTestApp(t)

	_, err := run(t, "add", "jane", "--name", "Jane Doe")
	require.NoError(t, err)
	_, err = run(t, "add", "drsmith", "--name", "Dr. Smith", "--role", "DOCTOR")
	require.NoError(t, err)

	out, err := run(t, "list", "--role", "DOCTOR")
	require.NoError(t, err)

	var users []queries.UserDTO
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "drsmith", users[0].Username)

	_, err = run(t, "list", "--role", "vet")
	assert.Error(t, err)
}
