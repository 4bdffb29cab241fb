package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	appointmentCommands "github.com/inheaven/petservice/internal/appointments/application/commands"
	appointmentDomain "github.com/inheaven/petservice/internal/appointments/domain"
	identityCommands "github.com/inheaven/petservice/internal/identity/application/commands"
	"github.com/inheaven/petservice/internal/shared/infrastructure/database"
	"github.com/inheaven/petservice/pkg/config"
	"github.com/inheaven/petservice/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppEnv:              "test",
		DatabaseDriver:      config.DriverSQLite,
		SQLitePath:          filepath.Join(t.TempDir(), "test.db"),
		DispatchMaxAttempts: 3,
		UserCacheTTL:        time.Minute,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewContainer_SQLite(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainer(ctx, testConfig(t), discardLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, database.DriverSQLite, c.DBDriver)
	assert.Nil(t, c.RedisClient)
	assert.NotNil(t, c.AppointmentRepo)
	assert.NotNil(t, c.UserRepo)
	assert.NotNil(t, c.OutboxRepo)
	assert.NotNil(t, c.DispatchNextHandler)
	assert.NotNil(t, c.ListQueueHandler)
	assert.NotNil(t, c.RegisterUserHandler)

	health := c.Health.Check(ctx)
	assert.Equal(t, observability.HealthStatusHealthy, health.Status)
	assert.Contains(t, health.Checks, "database")
}

func TestNewContainer_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "mysql"

	_, err := NewContainer(context.Background(), cfg, discardLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestContainer_QueueWorkflow(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, testConfig(t), discardLogger())
	require.NoError(t, err)
	defer c.Close()

	doctor, err := c.RegisterUserHandler.Handle(ctx, identityCommands.RegisterUserCommand{
		Username: "quinn", FullName: "Dr. Quinn", Role: "DOCTOR",
	})
	require.NoError(t, err)
	customer, err := c.RegisterUserHandler.Handle(ctx, identityCommands.RegisterUserCommand{
		Username: "jane", FullName: "Jane Doe", Role: "CUSTOMER",
	})
	require.NoError(t, err)

	booked, err := c.CreateAppointmentHandler.Handle(ctx, appointmentCommands.CreateAppointmentCommand{
		CustomerID: customer.ID(),
		Details: appointmentDomain.BookingDetails{
			Name:            "Jane Doe",
			PetName:         "Rex",
			PetType:         "dog",
			HealthStatus:    "limping",
			AppointmentTime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	_, err = c.CheckInHandler.Handle(ctx, appointmentCommands.CheckInCommand{AppointmentID: booked.ID()})
	require.NoError(t, err)

	dispatched, err := c.DispatchNextHandler.Handle(ctx, appointmentCommands.DispatchNextCommand{DoctorID: doctor.ID()})
	require.NoError(t, err)
	assert.Equal(t, booked.ID(), dispatched.ID())
	assert.Equal(t, appointmentDomain.StatusInProgress, dispatched.Status())

	completed, err := c.CompleteAppointmentHandler.Handle(ctx, appointmentCommands.CompleteAppointmentCommand{
		AppointmentID: booked.ID(),
		DoctorID:      doctor.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, appointmentDomain.StatusCompleted, completed.Status())

	_, err = c.DispatchNextHandler.Handle(ctx, appointmentCommands.DispatchNextCommand{DoctorID: doctor.ID()})
	assert.ErrorIs(t, err, appointmentDomain.ErrQueueEmpty)

	pending, err := c.OutboxRepo.GetUnpublished(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, pending, 6)
	assert.Equal(t, int64(1), c.Metrics.GetCounter(observability.MetricAppointmentTransitions, observability.T("to", "COMPLETED")))
}
