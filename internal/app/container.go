// Package app wires petservice's repositories, handlers and infrastructure.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	appointmentCommands "github.com/inheaven/petservice/internal/appointments/application/commands"
	appointmentQueries "github.com/inheaven/petservice/internal/appointments/application/queries"
	appointmentDomain "github.com/inheaven/petservice/internal/appointments/domain"
	"github.com/inheaven/petservice/internal/appointments/infrastructure/directory"
	identityCommands "github.com/inheaven/petservice/internal/identity/application/commands"
	identityQueries "github.com/inheaven/petservice/internal/identity/application/queries"
	identityDomain "github.com/inheaven/petservice/internal/identity/domain"
	identityPersistence "github.com/inheaven/petservice/internal/identity/infrastructure/persistence"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/database"
	_ "github.com/inheaven/petservice/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/inheaven/petservice/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/inheaven/petservice/internal/shared/infrastructure/migrations"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
	"github.com/inheaven/petservice/pkg/config"
	"github.com/inheaven/petservice/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis, nil when REDIS_URL is unset or unreachable in development
	RedisClient *redis.Client

	// Repositories
	AppointmentRepo appointmentDomain.Repository
	UserRepo        identityDomain.UserRepository
	OutboxRepo      outbox.Repository
	Directory       appointmentDomain.UserDirectory

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Appointment Command Handlers
	CreateAppointmentHandler   *appointmentCommands.CreateAppointmentHandler
	UpdateAppointmentHandler   *appointmentCommands.UpdateAppointmentHandler
	CheckInHandler             *appointmentCommands.CheckInHandler
	DispatchNextHandler        *appointmentCommands.DispatchNextHandler
	CompleteAppointmentHandler *appointmentCommands.CompleteAppointmentHandler
	ReturnToQueueHandler       *appointmentCommands.ReturnToQueueHandler
	UpdateNoteHandler          *appointmentCommands.UpdateNoteHandler
	CancelAppointmentHandler   *appointmentCommands.CancelAppointmentHandler
	DeleteAppointmentHandler   *appointmentCommands.DeleteAppointmentHandler

	// Appointment Query Handlers
	GetAppointmentHandler     *appointmentQueries.GetAppointmentHandler
	ListAppointmentsHandler   *appointmentQueries.ListAppointmentsHandler
	SearchAppointmentsHandler *appointmentQueries.SearchAppointmentsHandler
	ListQueueHandler          *appointmentQueries.ListQueueHandler
	Describer                 *appointmentQueries.Describer

	// Identity Handlers
	RegisterUserHandler *identityCommands.RegisterUserHandler
	GetUserHandler      *identityQueries.GetUserHandler
	ListUsersHandler    *identityQueries.ListUsersHandler
}

// NewContainer connects to the configured database (and Redis when set) and
// wires every handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
	}

	conn, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))

	if err := c.connectRedis(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	if err := c.wire(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// NewContainerWithConnection wires handlers over an already open connection.
// Tests use it with an in-memory SQLite database.
func NewContainerWithConnection(cfg *config.Config, conn database.Connection, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  observability.NewInMemoryMetrics(),
		Health:   observability.NewHealthRegistry(),
		DBConn:   conn,
		DBDriver: conn.Driver(),
	}
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))

	if err := c.wire(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) wire() error {
	factory := NewRepositoryFactory(c.DBConn)

	appointmentRepo, err := factory.AppointmentRepository()
	if err != nil {
		return fmt.Errorf("failed to create appointment repository: %w", err)
	}
	c.AppointmentRepo = appointmentRepo

	userRepo, err := factory.UserRepository()
	if err != nil {
		return fmt.Errorf("failed to create user repository: %w", err)
	}
	if c.RedisClient != nil {
		userRepo = identityPersistence.NewCachedUserRepository(userRepo, c.RedisClient, c.Config.UserCacheTTL, c.Logger, c.Metrics)
	}
	c.UserRepo = userRepo

	outboxRepo, err := factory.OutboxRepository()
	if err != nil {
		return fmt.Errorf("failed to create outbox repository: %w", err)
	}
	c.OutboxRepo = outboxRepo

	uow, err := factory.UnitOfWork()
	if err != nil {
		return fmt.Errorf("failed to create unit of work: %w", err)
	}
	c.UnitOfWork = uow

	c.Directory = directory.NewIdentityDirectory(c.UserRepo)
	recorder := appointmentCommands.NewRecorder(c.Logger, c.Metrics)

	// Create appointment command handlers
	c.CreateAppointmentHandler = appointmentCommands.NewCreateAppointmentHandler(c.AppointmentRepo, c.OutboxRepo, c.Directory, c.UnitOfWork)
	c.UpdateAppointmentHandler = appointmentCommands.NewUpdateAppointmentHandler(c.AppointmentRepo, c.OutboxRepo, c.Directory, c.UnitOfWork)
	c.CheckInHandler = appointmentCommands.NewCheckInHandler(c.AppointmentRepo, c.OutboxRepo, c.UnitOfWork, recorder)
	c.DispatchNextHandler = appointmentCommands.NewDispatchNextHandler(c.AppointmentRepo, c.OutboxRepo, c.Directory, c.UnitOfWork, recorder, c.Config.DispatchMaxAttempts)
	c.CompleteAppointmentHandler = appointmentCommands.NewCompleteAppointmentHandler(c.AppointmentRepo, c.OutboxRepo, c.Directory, c.UnitOfWork, recorder)
	c.ReturnToQueueHandler = appointmentCommands.NewReturnToQueueHandler(c.AppointmentRepo, c.OutboxRepo, c.UnitOfWork, recorder)
	c.UpdateNoteHandler = appointmentCommands.NewUpdateNoteHandler(c.AppointmentRepo, c.OutboxRepo, c.UnitOfWork)
	c.CancelAppointmentHandler = appointmentCommands.NewCancelAppointmentHandler(c.AppointmentRepo, c.OutboxRepo, c.UnitOfWork, recorder)
	c.DeleteAppointmentHandler = appointmentCommands.NewDeleteAppointmentHandler(c.AppointmentRepo, c.OutboxRepo, c.UnitOfWork)

	// Create appointment query handlers
	c.Describer = appointmentQueries.NewDescriber(c.Directory)
	c.GetAppointmentHandler = appointmentQueries.NewGetAppointmentHandler(c.AppointmentRepo, c.Directory)
	c.ListAppointmentsHandler = appointmentQueries.NewListAppointmentsHandler(c.AppointmentRepo, c.Directory)
	c.SearchAppointmentsHandler = appointmentQueries.NewSearchAppointmentsHandler(c.AppointmentRepo, c.Directory)
	c.ListQueueHandler = appointmentQueries.NewListQueueHandler(c.AppointmentRepo, c.Directory)

	// Create identity handlers
	c.RegisterUserHandler = identityCommands.NewRegisterUserHandler(c.UserRepo, c.OutboxRepo, c.UnitOfWork)
	c.GetUserHandler = identityQueries.NewGetUserHandler(c.UserRepo)
	c.ListUsersHandler = identityQueries.NewListUsersHandler(c.UserRepo)

	return nil
}

// connectRedis is optional in development: an unreachable Redis there only
// disables the user cache.
func (c *Container) connectRedis(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, user cache disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, user cache disabled", "error", err)
		return nil
	}

	c.RedisClient = client
	c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Info("connected to Redis")
	return nil
}

// Close releases all resources.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Info("Redis connection closed")
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "driver", c.DBDriver, "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DBDriver)
		}
	}
}

// sqliteConnection is a database.Connection that exposes DB().
type sqliteConnection interface {
	database.Connection
	DB() *sql.DB
}

// openDatabase connects to the configured backend. SQLite databases are
// migrated on open so a fresh install works without a migrate step.
func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (database.Connection, error) {
	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.Driver(cfg.DatabaseDriver),
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if sqliteConn, ok := conn.(sqliteConnection); ok {
		logger.Info("running SQLite migrations", "path", cfg.SQLitePath)
		if err := migrations.RunSQLiteMigrations(ctx, sqliteConn.DB()); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.Info("connected to database", "driver", conn.Driver())
	return conn, nil
}

// Migrate applies the schema for the configured backend.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.UsesPostgres() {
		logger.Info("running PostgreSQL migrations")
		if err := migrations.RunPostgresMigrations(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
		logger.Info("PostgreSQL migrations completed")
		return nil
	}

	conn, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return conn.Close()
}
