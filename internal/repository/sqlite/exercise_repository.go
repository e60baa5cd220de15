package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

// dateLayout is the storage format for entry dates. Keeping ISO days as TEXT
// makes inclusive range filters plain lexicographic comparisons.
const dateLayout = "2006-01-02"

const createLogEntriesTable = `
CREATE TABLE IF NOT EXISTS log_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL REFERENCES users(id),
	description TEXT NOT NULL,
	duration REAL NOT NULL,
	entry_date TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

const createLogEntriesIndex = `
CREATE INDEX IF NOT EXISTS idx_log_entries_user_date ON log_entries (user_id, entry_date);
`

type ExerciseLogRepository struct {
	db *sql.DB
}

func NewExerciseLogRepository(db *sql.DB) repository.ExerciseLogRepository {
	return &ExerciseLogRepository{db: db}
}

func (r *ExerciseLogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createLogEntriesTable); err != nil {
		return fmt.Errorf("create log_entries table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createLogEntriesIndex); err != nil {
		return fmt.Errorf("create log_entries index: %w", err)
	}
	return nil
}

func (r *ExerciseLogRepository) Append(ctx context.Context, entry *domain.LogEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	entry.CreatedAt = now

	res, err := tx.ExecContext(ctx, `
UPDATE users SET count = count + 1, updated_at = ? WHERE id = ?`,
		now,
		entry.UserID,
	)
	if err != nil {
		return fmt.Errorf("bump user count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bump user count: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", entry.UserID, repository.ErrNotFound)
	}

	res, err = tx.ExecContext(ctx, `
INSERT INTO log_entries (user_id, description, duration, entry_date, created_at)
VALUES (?, ?, ?, ?, ?)`,
		entry.UserID,
		entry.Description,
		entry.Duration,
		entry.Date.Format(dateLayout),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("log entry last insert id: %w", err)
	}
	entry.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

func (r *ExerciseLogRepository) ListByUser(ctx context.Context, userID string, filter repository.LogFilter) ([]domain.LogEntry, error) {
	query := `
SELECT id, user_id, description, duration, entry_date, created_at
FROM log_entries
WHERE user_id = ?`
	args := []any{userID}

	if filter.From != nil {
		query += ` AND entry_date >= ?`
		args = append(args, filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		query += ` AND entry_date <= ?`
		args = append(args, filter.To.Format(dateLayout))
	}
	query += ` ORDER BY id`
	if filter.Limit != nil {
		query += ` LIMIT ?`
		args = append(args, *filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var (
			entry   domain.LogEntry
			dateStr string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Description,
			&entry.Duration,
			&dateStr,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse stored entry date %q: %w", dateStr, err)
		}
		entry.Date = date
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log entries: %w", err)
	}
	return entries, nil
}
