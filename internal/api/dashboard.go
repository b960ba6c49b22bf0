package api

import (
	"context"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// DashboardService groups the /dashboard endpoints.
type DashboardService struct {
	c *Client
}

// Admin returns the admin dashboard aggregate.
func (s *DashboardService) Admin(ctx context.Context) (*model.AdminDashboard, error) {
	var d model.AdminDashboard
	if err := s.c.get(ctx, "/dashboard/admin", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Intern returns the intern dashboard aggregate.
func (s *DashboardService) Intern(ctx context.Context) (*model.InternDashboard, error) {
	var d model.InternDashboard
	if err := s.c.get(ctx, "/dashboard/intern", &d); err != nil {
		return nil, err
	}
	return &d, nil
}
