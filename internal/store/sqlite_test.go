package store

import (
	"context"
	"testing"
	"time"

	"github.com/muynuddinr/work-management-system/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.runMigrations(); err != nil {
		t.Fatalf("second migration run: %v", err)
	}
}

func TestUpsertAndGetTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{
			ID: "t1", Title: "Write weekly report", Description: "summary for mentor",
			Status: "pending", Priority: "high", AssignedTo: "u1",
			DueDate:   &due,
			CreatedAt: time.Now().Add(-2 * time.Hour),
			UpdatedAt: time.Now().Add(-time.Hour),
		},
		{
			ID: "t2", Title: "Review PR", Status: "completed", Priority: "low",
			AssignedTo: "u1",
			CreatedAt:  time.Now().Add(-time.Hour),
			UpdatedAt:  time.Now(),
		},
	}

	if err := s.UpsertTasks(ctx, tasks); err != nil {
		t.Fatalf("UpsertTasks: %v", err)
	}

	got, err := s.GetTasks(ctx, TaskFilter{})
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Most recently updated first.
	if got[0].ID != "t2" || got[1].ID != "t1" {
		t.Errorf("order = %s, %s; want t2, t1", got[0].ID, got[1].ID)
	}
	if got[1].DueDate == nil || !got[1].DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", got[1].DueDate, due)
	}

	// Upsert replaces, not duplicates.
	tasks[0].Status = "in-progress"
	if err := s.UpsertTasks(ctx, tasks); err != nil {
		t.Fatalf("UpsertTasks again: %v", err)
	}
	got, err = s.GetTasks(ctx, TaskFilter{})
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("upsert duplicated rows: %d", len(got))
	}
}

func TestGetTasksFiltering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tasks := []model.Task{
		{ID: "t1", Title: "Write report", Status: "pending", UpdatedAt: time.Now()},
		{ID: "t2", Title: "Fix login bug", Status: "pending", UpdatedAt: time.Now().Add(-time.Minute)},
		{ID: "t3", Title: "Deploy service", Status: "completed", UpdatedAt: time.Now().Add(-2 * time.Minute)},
	}
	if err := s.UpsertTasks(ctx, tasks); err != nil {
		t.Fatalf("UpsertTasks: %v", err)
	}

	pending := "pending"
	got, err := s.GetTasks(ctx, TaskFilter{Status: &pending})
	if err != nil {
		t.Fatalf("GetTasks status filter: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("pending tasks = %d, want 2", len(got))
	}

	q := "report"
	got, err = s.GetTasks(ctx, TaskFilter{Query: &q})
	if err != nil {
		t.Fatalf("GetTasks query filter: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("query filter = %+v, want t1 only", got)
	}

	got, err = s.GetTasks(ctx, TaskFilter{Limit: 1})
	if err != nil {
		t.Fatalf("GetTasks limit: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("limit ignored: %d rows", len(got))
	}
}

func TestNotificationMirror(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	notifications := []model.Notification{
		{ID: "n1", Type: "task", Title: "Task assigned", IsRead: false, CreatedAt: time.Now()},
		{ID: "n2", Type: "leave", Title: "Leave approved", IsRead: true, CreatedAt: time.Now().Add(-time.Hour)},
	}
	if err := s.UpsertNotifications(ctx, notifications); err != nil {
		t.Fatalf("UpsertNotifications: %v", err)
	}

	got, err := s.GetNotifications(ctx, 0)
	if err != nil {
		t.Fatalf("GetNotifications: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "n1" {
		t.Errorf("newest first: got %s", got[0].ID)
	}
	if got[0].IsRead || !got[1].IsRead {
		t.Errorf("read flags lost: %+v", got)
	}

	if err := s.DeleteNotification(ctx, "n1"); err != nil {
		t.Fatalf("DeleteNotification: %v", err)
	}
	got, err = s.GetNotifications(ctx, 0)
	if err != nil {
		t.Fatalf("GetNotifications: %v", err)
	}
	if len(got) != 1 || got[0].ID != "n2" {
		t.Errorf("after delete = %+v", got)
	}
}

func TestDraftLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveDraft(ctx, Draft{
		Date:        "2026-09-01",
		Title:       "Monday log",
		Description: "worked on onboarding docs",
		Hours:       6.5,
	})
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if id == "" {
		t.Fatal("SaveDraft returned empty ID")
	}

	drafts, err := s.GetDrafts(ctx)
	if err != nil {
		t.Fatalf("GetDrafts: %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != id || drafts[0].Hours != 6.5 {
		t.Fatalf("drafts = %+v", drafts)
	}

	// Saving with the same ID updates in place.
	drafts[0].Title = "Monday log (edited)"
	if _, err := s.SaveDraft(ctx, drafts[0]); err != nil {
		t.Fatalf("SaveDraft update: %v", err)
	}
	drafts, err = s.GetDrafts(ctx)
	if err != nil {
		t.Fatalf("GetDrafts: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Title != "Monday log (edited)" {
		t.Errorf("update duplicated or lost draft: %+v", drafts)
	}

	if err := s.DeleteDraft(ctx, id); err != nil {
		t.Fatalf("DeleteDraft: %v", err)
	}
	drafts, err = s.GetDrafts(ctx)
	if err != nil {
		t.Fatalf("GetDrafts: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("draft survived delete: %+v", drafts)
	}
}
