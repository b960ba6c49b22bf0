package api

import (
	"context"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// NotificationsService groups the /notifications endpoints.
type NotificationsService struct {
	c *Client
}

// NotificationList is the notifications payload: the recent items plus
// the server-authoritative unread count.
type NotificationList struct {
	Items       []model.Notification `json:"notifications"`
	UnreadCount int                  `json:"unreadCount"`
}

// List returns recent notifications and the unread count.
func (s *NotificationsService) List(ctx context.Context) (*NotificationList, error) {
	var list NotificationList
	if err := s.c.get(ctx, "/notifications", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// MarkRead flags one notification as read.
func (s *NotificationsService) MarkRead(ctx context.Context, id string) error {
	return s.c.put(ctx, "/notifications/"+id+"/read", nil, nil)
}

// MarkAllRead flags every notification as read.
func (s *NotificationsService) MarkAllRead(ctx context.Context) error {
	return s.c.put(ctx, "/notifications/read-all", nil, nil)
}

// Delete removes a notification.
func (s *NotificationsService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/notifications/"+id)
}
