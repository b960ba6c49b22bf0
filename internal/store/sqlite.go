package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// WAL for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// UpsertTasks inserts or replaces a batch of cached tasks.
func (s *SQLiteStore) UpsertTasks(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO tasks (
			id, title, description, status, priority,
			assigned_to, due_date, created_at, updated_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, t := range tasks {
		var due *time.Time
		if t.DueDate != nil {
			d := t.DueDate.UTC()
			due = &d
		}
		_, err = stmt.ExecContext(ctx,
			t.ID, t.Title, t.Description, t.Status, t.Priority,
			t.AssignedTo, due, t.CreatedAt.UTC(), t.UpdatedAt.UTC(), now,
		)
		if err != nil {
			return fmt.Errorf("upserting task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetTasks retrieves cached tasks matching the provided filter.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := "SELECT id, title, description, status, priority, assigned_to, due_date, created_at, updated_at FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY updated_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var (
			t       model.Task
			dueDate *time.Time
		)
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.AssignedTo, &dueDate, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		t.DueDate = dueDate
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// UpsertNotifications mirrors a batch of fetched notifications.
func (s *SQLiteStore) UpsertNotifications(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO notifications (
			id, type, title, message, link, is_read,
			priority, created_by, created_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, n := range notifications {
		_, err = stmt.ExecContext(ctx,
			n.ID, n.Type, n.Title, n.Message, n.Link, boolToInt(n.IsRead),
			n.Priority, n.CreatedBy, n.CreatedAt.UTC(), now,
		)
		if err != nil {
			return fmt.Errorf("upserting notification %s: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// GetNotifications retrieves the most recent cached notifications.
func (s *SQLiteStore) GetNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	query := "SELECT id, type, title, message, link, is_read, priority, created_by, created_at FROM notifications ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var (
			n       model.Notification
			readInt int
		)
		err := rows.Scan(
			&n.ID, &n.Type, &n.Title, &n.Message, &n.Link, &readInt,
			&n.Priority, &n.CreatedBy, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		n.IsRead = readInt != 0
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// DeleteNotification removes a mirrored notification.
func (s *SQLiteStore) DeleteNotification(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return nil
}

// SaveDraft stores a work log draft. A new UUID is assigned when the
// draft has no ID yet. Returns the draft's ID.
func (s *SQLiteStore) SaveDraft(ctx context.Context, d Draft) (string, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO worklog_drafts (id, date, title, description, hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Date, d.Title, d.Description, d.Hours, d.CreatedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("saving draft: %w", err)
	}

	return d.ID, nil
}

// GetDrafts retrieves all pending work log drafts, oldest first.
func (s *SQLiteStore) GetDrafts(ctx context.Context) ([]Draft, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, date, title, description, hours, created_at FROM worklog_drafts ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		var d Draft
		err := rows.Scan(&d.ID, &d.Date, &d.Title, &d.Description, &d.Hours, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning draft row: %w", err)
		}
		drafts = append(drafts, d)
	}

	return drafts, rows.Err()
}

// DeleteDraft removes a draft, typically after successful submission.
func (s *SQLiteStore) DeleteDraft(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM worklog_drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}
	return nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
