package api

import (
	"context"
	"net/url"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// EvaluationsService groups the /evaluations endpoints.
type EvaluationsService struct {
	c *Client
}

// List returns evaluations, optionally filtered by intern.
func (s *EvaluationsService) List(ctx context.Context, internID string) ([]model.Evaluation, error) {
	path := "/evaluations"
	if internID != "" {
		path += "?" + url.Values{"intern": {internID}}.Encode()
	}
	var evals []model.Evaluation
	if err := s.c.get(ctx, path, &evals); err != nil {
		return nil, err
	}
	return evals, nil
}

// Get returns a single evaluation.
func (s *EvaluationsService) Get(ctx context.Context, id string) (*model.Evaluation, error) {
	var ev model.Evaluation
	if err := s.c.get(ctx, "/evaluations/"+id, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Create drafts a new evaluation (admin only).
func (s *EvaluationsService) Create(ctx context.Context, payload interface{}) (*model.Evaluation, error) {
	var ev model.Evaluation
	if err := s.c.post(ctx, "/evaluations", payload, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Update edits a draft evaluation.
func (s *EvaluationsService) Update(ctx context.Context, id string, payload interface{}) (*model.Evaluation, error) {
	var ev model.Evaluation
	if err := s.c.put(ctx, "/evaluations/"+id, payload, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Delete removes an evaluation.
func (s *EvaluationsService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/evaluations/"+id)
}

// Publish makes the evaluation visible to the intern.
func (s *EvaluationsService) Publish(ctx context.Context, id string) (*model.Evaluation, error) {
	var ev model.Evaluation
	if err := s.c.put(ctx, "/evaluations/"+id+"/publish", nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
