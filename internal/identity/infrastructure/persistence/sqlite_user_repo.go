package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/identity/domain"
	sharedPersistence "github.com/inheaven/petservice/internal/shared/infrastructure/persistence"
)

// SQLiteUserRepository implements domain.UserRepository using SQLite.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLite user repository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Save inserts a new user.
func (r *SQLiteUserRepository) Save(ctx context.Context, user *domain.User) error {
	row := toUserRow(user)
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.ID.String(),
		row.Username,
		row.FullName,
		row.Email,
		row.Phone,
		row.Role,
		sharedPersistence.FormatTime(row.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", row.Username, err)
	}
	return nil
}

// FindByID retrieves a user by ID.
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	return scanSQLiteUser(exec.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id.String()))
}

// FindByUsername retrieves a user by username.
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	return scanSQLiteUser(exec.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username.String()))
}

// List returns users ordered by username, optionally restricted to role.
func (r *SQLiteUserRepository) List(ctx context.Context, role *domain.Role) ([]*domain.User, error) {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE (? IS NULL OR role = ?)
		ORDER BY username`, roleArg(role), roleArg(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanSQLiteUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteUser(scanner rowScanner) (*domain.User, error) {
	var row userRow
	var id, createdAt string

	err := scanner.Scan(&id, &row.Username, &row.FullName, &row.Email, &row.Phone, &row.Role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if row.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	if row.CreatedAt, err = sharedPersistence.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return row.toDomain()
}
