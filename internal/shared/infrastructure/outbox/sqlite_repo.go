package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	sharedPersistence "github.com/inheaven/petservice/internal/shared/infrastructure/persistence"
)

const sqliteSelectMessage = `
	SELECT id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
	       payload, metadata, created_at, published_at, next_retry_at, retry_count,
	       last_error, dead_lettered_at, dead_letter_reason
	FROM outbox`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository creates a new SQLite outbox repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Save(ctx context.Context, msg *Message) error {
	return r.SaveBatch(ctx, []*Message{msg})
}

// SaveBatch inserts msgs in the context transaction when present.
func (r *SQLiteRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	exec := sharedPersistence.SQLiteExecutor(ctx, r.db)
	for _, msg := range msgs {
		result, err := exec.ExecContext(ctx, `
			INSERT INTO outbox (
				event_id, aggregate_type, aggregate_id, event_type, routing_key,
				payload, metadata, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			msg.EventID.String(),
			msg.AggregateType,
			msg.AggregateID.String(),
			msg.EventType,
			msg.RoutingKey,
			string(msg.Payload),
			string(msg.Metadata),
			sharedPersistence.FormatTime(msg.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert outbox message %s: %w", msg.EventID, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		msg.ID = id
	}
	return nil
}

func (r *SQLiteRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	return r.query(ctx, sqliteSelectMessage+`
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY created_at, id
		LIMIT ?`, r.nowText(), limit)
}

func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE outbox SET published_at = ? WHERE id = ?`, r.nowText(), id)
	return err
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE outbox
		SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ?
		WHERE id = ?`, errMsg, sharedPersistence.FormatTime(nextRetryAt), id)
	return err
}

func (r *SQLiteRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE outbox
		SET dead_lettered_at = ?, dead_letter_reason = ?
		WHERE id = ?`, r.nowText(), reason, id)
	return err
}

func (r *SQLiteRepository) GetFailed(ctx context.Context, maxRetries, limit int) ([]*Message, error) {
	return r.query(ctx, sqliteSelectMessage+`
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND retry_count > 0
		  AND retry_count < ?
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY created_at, id
		LIMIT ?`, maxRetries, r.nowText(), limit)
}

func (r *SQLiteRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := sharedPersistence.FormatTime(r.now().AddDate(0, 0, -olderThanDays))
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM outbox
		WHERE published_at IS NOT NULL AND published_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *SQLiteRepository) nowText() string {
	return sharedPersistence.FormatTime(r.now())
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		msg, err := scanSQLiteMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func scanSQLiteMessage(rows *sql.Rows) (*Message, error) {
	var msg Message
	var eventID, aggregateID, payload, metadata, createdAt string
	var publishedAt, nextRetryAt, deadLetteredAt, lastError, deadLetterReason sql.NullString
	err := rows.Scan(
		&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.EventType, &msg.RoutingKey,
		&payload, &metadata, &createdAt, &publishedAt, &nextRetryAt, &msg.RetryCount,
		&lastError, &deadLetteredAt, &deadLetterReason,
	)
	if err != nil {
		return nil, err
	}

	if msg.EventID, err = uuid.Parse(eventID); err != nil {
		return nil, fmt.Errorf("outbox %d: event id: %w", msg.ID, err)
	}
	if msg.AggregateID, err = uuid.Parse(aggregateID); err != nil {
		return nil, fmt.Errorf("outbox %d: aggregate id: %w", msg.ID, err)
	}
	if msg.CreatedAt, err = sharedPersistence.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("outbox %d: created_at: %w", msg.ID, err)
	}
	if msg.PublishedAt, err = sharedPersistence.ParseNullTime(publishedAt); err != nil {
		return nil, err
	}
	if msg.NextRetryAt, err = sharedPersistence.ParseNullTime(nextRetryAt); err != nil {
		return nil, err
	}
	if msg.DeadLetteredAt, err = sharedPersistence.ParseNullTime(deadLetteredAt); err != nil {
		return nil, err
	}
	msg.Payload = []byte(payload)
	msg.Metadata = []byte(metadata)
	if lastError.Valid {
		msg.LastError = &lastError.String
	}
	if deadLetterReason.Valid {
		msg.DeadLetterReason = &deadLetterReason.String
	}
	return &msg, nil
}
