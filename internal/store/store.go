// Package store is the local SQLite cache. Fetched tasks and
// notifications are mirrored here so the dashboard can show recent
// activity while the backend is unreachable; work log drafts composed
// offline live here until they are submitted.
package store

import (
	"context"
	"time"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// TaskFilter controls filtering and pagination for cached task queries.
type TaskFilter struct {
	Status *string
	Query  *string
	Limit  int
}

// Draft is a work log composed locally and not yet submitted.
type Draft struct {
	ID          string
	Date        string
	Title       string
	Description string
	Hours       float64
	CreatedAt   time.Time
}

// Store defines the cache persistence interface.
type Store interface {
	UpsertTasks(ctx context.Context, tasks []model.Task) error
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)

	UpsertNotifications(ctx context.Context, notifications []model.Notification) error
	GetNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	DeleteNotification(ctx context.Context, id string) error

	SaveDraft(ctx context.Context, d Draft) (string, error)
	GetDrafts(ctx context.Context) ([]Draft, error)
	DeleteDraft(ctx context.Context, id string) error

	Close() error
}
