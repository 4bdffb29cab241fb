package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
	sharedPersistence "github.com/inheaven/petservice/internal/shared/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository implements domain.UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL user repository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Save inserts a new user.
func (r *PostgresUserRepository) Save(ctx context.Context, user *domain.User) error {
	row := toUserRow(user)
	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID,
		row.Username,
		row.FullName,
		row.Email,
		row.Phone,
		row.Role,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", row.Username, err)
	}
	return nil
}

// FindByID retrieves a user by ID.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	return scanPgUser(exec.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindByUsername retrieves a user by username.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	return scanPgUser(exec.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username.String()))
}

// List returns users ordered by username, optionally restricted to role.
func (r *PostgresUserRepository) List(ctx context.Context, role *domain.Role) ([]*domain.User, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE ($1::text IS NULL OR role = $1)
		ORDER BY username`, roleArg(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanPgUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanPgUser(scanner pgx.Row) (*domain.User, error) {
	var row userRow
	err := scanner.Scan(&row.ID, &row.Username, &row.FullName, &row.Email, &row.Phone, &row.Role, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	row.CreatedAt = row.CreatedAt.UTC()
	return row.toDomain()
}
