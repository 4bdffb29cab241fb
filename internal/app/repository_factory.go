package app

import (
	"database/sql"
	"fmt"

	appointmentDomain "github.com/inheaven/petservice/internal/appointments/domain"
	appointmentPersistence "github.com/inheaven/petservice/internal/appointments/infrastructure/persistence"
	identityDomain "github.com/inheaven/petservice/internal/identity/domain"
	identityPersistence "github.com/inheaven/petservice/internal/identity/infrastructure/persistence"
	sharedApplication "github.com/inheaven/petservice/internal/shared/application"
	"github.com/inheaven/petservice/internal/shared/infrastructure/database"
	"github.com/inheaven/petservice/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/inheaven/petservice/internal/shared/infrastructure/persistence"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// AppointmentRepository creates an appointment repository for the configured driver.
func (f *RepositoryFactory) AppointmentRepository() (appointmentDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		pool, err := f.getPostgresPool()
		if err != nil {
			return nil, err
		}
		return appointmentPersistence.NewPostgresAppointmentRepository(pool), nil

	case database.DriverSQLite:
		db, err := f.getSQLiteDB()
		if err != nil {
			return nil, err
		}
		return appointmentPersistence.NewSQLiteAppointmentRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// UserRepository creates an uncached user repository for the configured driver.
func (f *RepositoryFactory) UserRepository() (identityDomain.UserRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		pool, err := f.getPostgresPool()
		if err != nil {
			return nil, err
		}
		return identityPersistence.NewPostgresUserRepository(pool), nil

	case database.DriverSQLite:
		db, err := f.getSQLiteDB()
		if err != nil {
			return nil, err
		}
		return identityPersistence.NewSQLiteUserRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// OutboxRepository creates an outbox repository for the configured driver.
func (f *RepositoryFactory) OutboxRepository() (outbox.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		pool, err := f.getPostgresPool()
		if err != nil {
			return nil, err
		}
		return outbox.NewPostgresRepository(pool), nil

	case database.DriverSQLite:
		db, err := f.getSQLiteDB()
		if err != nil {
			return nil, err
		}
		return outbox.NewSQLiteRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// UnitOfWork creates the transaction manager for the configured driver.
func (f *RepositoryFactory) UnitOfWork() (sharedApplication.UnitOfWork, error) {
	switch f.driver {
	case database.DriverPostgres:
		pool, err := f.getPostgresPool()
		if err != nil {
			return nil, err
		}
		return sharedPersistence.NewPostgresUnitOfWork(pool), nil

	case database.DriverSQLite:
		db, err := f.getSQLiteDB()
		if err != nil {
			return nil, err
		}
		return sharedPersistence.NewSQLiteUnitOfWork(db), nil

	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

func (f *RepositoryFactory) getPostgresPool() (*pgxpool.Pool, error) {
	pgConn, ok := f.conn.(interface{ Pool() *pgxpool.Pool })
	if !ok {
		return nil, fmt.Errorf("postgres connection does not expose Pool()")
	}
	return pgConn.Pool(), nil
}

func (f *RepositoryFactory) getSQLiteDB() (*sql.DB, error) {
	sqliteConn, ok := f.conn.(interface{ DB() *sql.DB })
	if !ok {
		return nil, fmt.Errorf("sqlite connection does not expose DB()")
	}
	return sqliteConn.DB(), nil
}

// Driver returns the database driver type.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}
