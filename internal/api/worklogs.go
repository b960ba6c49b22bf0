package api

import (
	"context"
	"net/url"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// WorkLogsService groups the /worklogs endpoints.
type WorkLogsService struct {
	c *Client
}

// WorkLogPayload is the create/update request body.
type WorkLogPayload struct {
	Date        string  `json:"date"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Hours       float64 `json:"hoursWorked"`
}

// List returns work logs, optionally filtered by user.
func (s *WorkLogsService) List(ctx context.Context, userID string) ([]model.WorkLog, error) {
	path := "/worklogs"
	if userID != "" {
		path += "?" + url.Values{"user": {userID}}.Encode()
	}
	var logs []model.WorkLog
	if err := s.c.get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Get returns a single work log.
func (s *WorkLogsService) Get(ctx context.Context, id string) (*model.WorkLog, error) {
	var wl model.WorkLog
	if err := s.c.get(ctx, "/worklogs/"+id, &wl); err != nil {
		return nil, err
	}
	return &wl, nil
}

// Create submits a new daily report.
func (s *WorkLogsService) Create(ctx context.Context, payload WorkLogPayload) (*model.WorkLog, error) {
	var wl model.WorkLog
	if err := s.c.post(ctx, "/worklogs", payload, &wl); err != nil {
		return nil, err
	}
	return &wl, nil
}

// Update edits an existing report.
func (s *WorkLogsService) Update(ctx context.Context, id string, payload WorkLogPayload) (*model.WorkLog, error) {
	var wl model.WorkLog
	if err := s.c.put(ctx, "/worklogs/"+id, payload, &wl); err != nil {
		return nil, err
	}
	return &wl, nil
}

// Delete removes a report.
func (s *WorkLogsService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/worklogs/"+id)
}

// Feedback records supervisor feedback and a rating on a report.
func (s *WorkLogsService) Feedback(ctx context.Context, id, feedback string, rating int) (*model.WorkLog, error) {
	body := map[string]interface{}{
		"feedback": feedback,
		"rating":   rating,
	}
	var wl model.WorkLog
	if err := s.c.put(ctx, "/worklogs/"+id+"/feedback", body, &wl); err != nil {
		return nil, err
	}
	return &wl, nil
}
