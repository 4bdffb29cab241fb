package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	sharedPersistence "github.com/inheaven/petservice/internal/shared/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAppointmentRepository implements domain.Repository using PostgreSQL.
type PostgresAppointmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAppointmentRepository creates a new PostgreSQL appointment repository.
func NewPostgresAppointmentRepository(pool *pgxpool.Pool) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{pool: pool}
}

// Save inserts a new appointment.
func (r *PostgresAppointmentRepository) Save(ctx context.Context, a *domain.Appointment) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`, name_folded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		a.ID(),
		a.OwnerID(),
		a.Name(),
		a.PetName(),
		a.PetType(),
		a.Breed(),
		a.HealthStatus(),
		a.HealthHistory(),
		a.Note(),
		a.AppointmentTime(),
		a.CheckInTime(),
		a.Status().String(),
		a.PreferredDoctorID(),
		a.AssignedDoctorID(),
		a.CreatedAt(),
		a.UpdatedAt(),
		foldName(a.Name()),
	)
	if err != nil {
		return fmt.Errorf("insert appointment %s: %w", a.ID(), err)
	}
	return nil
}

// SaveTransition writes every mutable column if the stored status is still
// expected.
func (r *PostgresAppointmentRepository) SaveTransition(ctx context.Context, a *domain.Appointment, expected domain.Status) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
		UPDATE appointments
		SET name = $1, pet_name = $2, type = $3, breed = $4, health_status = $5, health_history = $6,
		    note = $7, appointment_time = $8, check_in_time = $9, status = $10,
		    preferred_doctor_id = $11, assigned_doctor_id = $12, updated_at = $13, name_folded = $14
		WHERE id = $15 AND status = $16`,
		a.Name(),
		a.PetName(),
		a.PetType(),
		a.Breed(),
		a.HealthStatus(),
		a.HealthHistory(),
		a.Note(),
		a.AppointmentTime(),
		a.CheckInTime(),
		a.Status().String(),
		a.PreferredDoctorID(),
		a.AssignedDoctorID(),
		a.UpdatedAt(),
		foldName(a.Name()),
		a.ID(),
		expected.String(),
	)
	if err != nil {
		return fmt.Errorf("update appointment %s: %w", a.ID(), err)
	}
	return expectOneTag(tag, a.ID(), expected)
}

// Delete removes the appointment if its stored status is expected.
func (r *PostgresAppointmentRepository) Delete(ctx context.Context, id uuid.UUID, expected domain.Status) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM appointments WHERE id = $1 AND status = $2`, id, expected.String())
	if err != nil {
		return fmt.Errorf("delete appointment %s: %w", id, err)
	}
	return expectOneTag(tag, id, expected)
}

// FindByID retrieves an appointment by its ID.
func (r *PostgresAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)

	a, err := scanPgAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// FindByStatus returns appointments in queue order.
func (r *PostgresAppointmentRepository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE status = $1
		ORDER BY check_in_time, id`, status.String())
}

// FindByNameLike matches a case-insensitive substring of the booking name.
func (r *PostgresAppointmentRepository) FindByNameLike(ctx context.Context, query string, status *domain.Status) ([]*domain.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE name_folded LIKE $1 ESCAPE '\'
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY appointment_time DESC, id`, likePattern(query), statusArg(status))
}

// FindAll returns every appointment, newest appointment time first.
func (r *PostgresAppointmentRepository) FindAll(ctx context.Context) ([]*domain.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		ORDER BY appointment_time DESC, id`)
}

// FindByOwner returns the appointments booked by ownerID.
func (r *PostgresAppointmentRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE owner_id = $1
		ORDER BY appointment_time DESC, id`, ownerID)
}

func (r *PostgresAppointmentRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanPgAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func scanPgAppointment(row pgx.Row) (*domain.Appointment, error) {
	var (
		state  domain.AppointmentState
		status string
	)
	err := row.Scan(
		&state.ID,
		&state.OwnerID,
		&state.Details.Name,
		&state.Details.PetName,
		&state.Details.PetType,
		&state.Details.Breed,
		&state.Details.HealthStatus,
		&state.Details.HealthHistory,
		&state.Details.Note,
		&state.Details.AppointmentTime,
		&state.CheckInTime,
		&status,
		&state.Details.PreferredDoctorID,
		&state.AssignedDoctorID,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	state.Status = domain.Status(status)
	state.Details.AppointmentTime = state.Details.AppointmentTime.UTC()
	if state.CheckInTime != nil {
		checkIn := state.CheckInTime.UTC()
		state.CheckInTime = &checkIn
	}
	state.CreatedAt = state.CreatedAt.UTC()
	state.UpdatedAt = state.UpdatedAt.UTC()
	return domain.RehydrateAppointment(state), nil
}

func expectOneTag(tag pgconn.CommandTag, id uuid.UUID, expected domain.Status) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s is no longer %s: %w", id, expected, sharedDomain.ErrConflict)
	}
	return nil
}
