package api

import (
	"context"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// AnnouncementsService groups the /announcements endpoints.
type AnnouncementsService struct {
	c *Client
}

// List returns all visible announcements.
func (s *AnnouncementsService) List(ctx context.Context) ([]model.Announcement, error) {
	var anns []model.Announcement
	if err := s.c.get(ctx, "/announcements", &anns); err != nil {
		return nil, err
	}
	return anns, nil
}

// Create posts a new announcement (admin only).
func (s *AnnouncementsService) Create(ctx context.Context, title, content, priority string) (*model.Announcement, error) {
	body := map[string]string{
		"title":    title,
		"content":  content,
		"priority": priority,
	}
	var ann model.Announcement
	if err := s.c.post(ctx, "/announcements", body, &ann); err != nil {
		return nil, err
	}
	return &ann, nil
}

// MarkRead acknowledges an announcement for the authenticated user.
func (s *AnnouncementsService) MarkRead(ctx context.Context, id string) error {
	return s.c.put(ctx, "/announcements/"+id+"/read", nil, nil)
}
