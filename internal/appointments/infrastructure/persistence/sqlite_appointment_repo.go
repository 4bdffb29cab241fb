package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inheaven/petservice/internal/appointments/domain"
	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	sharedPersistence "github.com/inheaven/petservice/internal/shared/infrastructure/persistence"
)

// SQLiteAppointmentRepository implements domain.Repository using SQLite.
type SQLiteAppointmentRepository struct {
	db *sql.DB
}

// NewSQLiteAppointmentRepository creates a new SQLite appointment repository.
func NewSQLiteAppointmentRepository(db *sql.DB) *SQLiteAppointmentRepository {
	return &SQLiteAppointmentRepository{db: db}
}

// Save inserts a new appointment.
func (r *SQLiteAppointmentRepository) Save(ctx context.Context, a *domain.Appointment) error {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`, name_folded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID().String(),
		a.OwnerID().String(),
		a.Name(),
		a.PetName(),
		a.PetType(),
		a.Breed(),
		a.HealthStatus(),
		a.HealthHistory(),
		a.Note(),
		sharedPersistence.FormatTime(a.AppointmentTime()),
		sharedPersistence.FormatNullTime(a.CheckInTime()),
		a.Status().String(),
		nullID(a.PreferredDoctorID()),
		nullID(a.AssignedDoctorID()),
		sharedPersistence.FormatTime(a.CreatedAt()),
		sharedPersistence.FormatTime(a.UpdatedAt()),
		foldName(a.Name()),
	)
	if err != nil {
		return fmt.Errorf("insert appointment %s: %w", a.ID(), err)
	}
	return nil
}

// SaveTransition writes every mutable column if the stored status is still
// expected.
func (r *SQLiteAppointmentRepository) SaveTransition(ctx context.Context, a *domain.Appointment, expected domain.Status) error {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	result, err := exec.ExecContext(ctx, `
		UPDATE appointments
		SET name = ?, pet_name = ?, type = ?, breed = ?, health_status = ?, health_history = ?,
		    note = ?, appointment_time = ?, check_in_time = ?, status = ?,
		    preferred_doctor_id = ?, assigned_doctor_id = ?, updated_at = ?, name_folded = ?
		WHERE id = ? AND status = ?`,
		a.Name(),
		a.PetName(),
		a.PetType(),
		a.Breed(),
		a.HealthStatus(),
		a.HealthHistory(),
		a.Note(),
		sharedPersistence.FormatTime(a.AppointmentTime()),
		sharedPersistence.FormatNullTime(a.CheckInTime()),
		a.Status().String(),
		nullID(a.PreferredDoctorID()),
		nullID(a.AssignedDoctorID()),
		sharedPersistence.FormatTime(a.UpdatedAt()),
		foldName(a.Name()),
		a.ID().String(),
		expected.String(),
	)
	if err != nil {
		return fmt.Errorf("update appointment %s: %w", a.ID(), err)
	}
	return expectOneRow(result, a.ID(), expected)
}

// Delete removes the appointment if its stored status is expected.
func (r *SQLiteAppointmentRepository) Delete(ctx context.Context, id uuid.UUID, expected domain.Status) error {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	result, err := exec.ExecContext(ctx, `DELETE FROM appointments WHERE id = ? AND status = ?`, id.String(), expected.String())
	if err != nil {
		return fmt.Errorf("delete appointment %s: %w", id, err)
	}
	return expectOneRow(result, id, expected)
}

// FindByID retrieves an appointment by its ID.
func (r *SQLiteAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	row := exec.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id.String())

	a, err := scanSQLiteAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// FindByStatus returns appointments in queue order.
func (r *SQLiteAppointmentRepository) FindByStatus(ctx context.Context, status domain.Status) ([]*domain.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE status = ?
		ORDER BY check_in_time, id`, status.String())
}

// FindByNameLike matches a case-insensitive substring of the booking name.
func (r *SQLiteAppointmentRepository) FindByNameLike(ctx context.Context, query string, status *domain.Status) ([]*domain.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE name_folded LIKE ? ESCAPE '\'
		  AND (? IS NULL OR status = ?)
		ORDER BY appointment_time DESC, id`, likePattern(query), statusArg(status), statusArg(status))
}

// FindAll returns every appointment, newest appointment time first.
func (r *SQLiteAppointmentRepository) FindAll(ctx context.Context) ([]*domain.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		ORDER BY appointment_time DESC, id`)
}

// FindByOwner returns the appointments booked by ownerID.
func (r *SQLiteAppointmentRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE owner_id = ?
		ORDER BY appointment_time DESC, id`, ownerID.String())
}

func (r *SQLiteAppointmentRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanSQLiteAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteAppointment(row rowScanner) (*domain.Appointment, error) {
	var id, ownerID, status, appointmentTime, createdAt, updatedAt string
	var checkInTime, preferredDoctorID, assignedDoctorID sql.NullString
	var details domain.BookingDetails

	err := row.Scan(
		&id,
		&ownerID,
		&details.Name,
		&details.PetName,
		&details.PetType,
		&details.Breed,
		&details.HealthStatus,
		&details.HealthHistory,
		&details.Note,
		&appointmentTime,
		&checkInTime,
		&status,
		&preferredDoctorID,
		&assignedDoctorID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	state := domain.AppointmentState{Status: domain.Status(status)}
	if state.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse appointment id: %w", err)
	}
	if state.OwnerID, err = uuid.Parse(ownerID); err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}
	if details.AppointmentTime, err = sharedPersistence.ParseTime(appointmentTime); err != nil {
		return nil, fmt.Errorf("parse appointment time: %w", err)
	}
	if state.CheckInTime, err = sharedPersistence.ParseNullTime(checkInTime); err != nil {
		return nil, fmt.Errorf("parse check-in time: %w", err)
	}
	if details.PreferredDoctorID, err = parseNullID(preferredDoctorID); err != nil {
		return nil, fmt.Errorf("parse preferred doctor id: %w", err)
	}
	if state.AssignedDoctorID, err = parseNullID(assignedDoctorID); err != nil {
		return nil, fmt.Errorf("parse assigned doctor id: %w", err)
	}
	if state.CreatedAt, err = sharedPersistence.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if state.UpdatedAt, err = sharedPersistence.ParseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	state.Details = details

	return domain.RehydrateAppointment(state), nil
}

func expectOneRow(result sql.Result, id uuid.UUID, expected domain.Status) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("appointment %s is no longer %s: %w", id, expected, sharedDomain.ErrConflict)
	}
	return nil
}

func nullID(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func parseNullID(s sql.NullString) (*uuid.UUID, error) {
	if !s.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
