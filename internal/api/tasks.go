package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// TasksService groups the /tasks endpoints.
type TasksService struct {
	c *Client
}

// TaskFilter narrows List results. Search is a free-text filter used by
// the global search fan-out.
type TaskFilter struct {
	Status     string
	Priority   string
	AssignedTo string
	Search     string
	Limit      int
}

func (f TaskFilter) query() string {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Priority != "" {
		v.Set("priority", f.Priority)
	}
	if f.AssignedTo != "" {
		v.Set("assignedTo", f.AssignedTo)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// List returns tasks matching the filter.
func (s *TasksService) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var tasks []model.Task
	if err := s.c.get(ctx, "/tasks"+filter.query(), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns a single task.
func (s *TasksService) Get(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := s.c.get(ctx, "/tasks/"+id, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create creates a task (admin only).
func (s *TasksService) Create(ctx context.Context, payload interface{}) (*model.Task, error) {
	var task model.Task
	if err := s.c.post(ctx, "/tasks", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a task.
func (s *TasksService) Update(ctx context.Context, id string, payload interface{}) (*model.Task, error) {
	var task model.Task
	if err := s.c.put(ctx, "/tasks/"+id, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task.
func (s *TasksService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/tasks/"+id)
}

// AddComment appends a comment to the task's discussion thread.
func (s *TasksService) AddComment(ctx context.Context, id, text string) (*model.Task, error) {
	body := map[string]string{"text": text}
	var task model.Task
	if err := s.c.post(ctx, "/tasks/"+id+"/comments", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Stats returns task statistics. userID may be empty for the
// authenticated user.
func (s *TasksService) Stats(ctx context.Context, userID string) (*model.TaskStats, error) {
	path := "/tasks/stats"
	if userID != "" {
		path += "/" + userID
	}
	var stats model.TaskStats
	if err := s.c.get(ctx, path, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
