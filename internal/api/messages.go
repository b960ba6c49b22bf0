package api

import (
	"context"
	"net/url"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// MessagesService groups the /messages endpoints.
type MessagesService struct {
	c *Client
}

// List returns messages exchanged with the given user, or the whole
// inbox when withUser is empty.
func (s *MessagesService) List(ctx context.Context, withUser string) ([]model.Message, error) {
	path := "/messages"
	if withUser != "" {
		path += "?" + url.Values{"with": {withUser}}.Encode()
	}
	var msgs []model.Message
	if err := s.c.get(ctx, path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Send delivers a message to another user.
func (s *MessagesService) Send(ctx context.Context, recipient, subject, content string) (*model.Message, error) {
	body := map[string]string{
		"recipient": recipient,
		"subject":   subject,
		"content":   content,
	}
	var msg model.Message
	if err := s.c.post(ctx, "/messages", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead flags a message as read.
func (s *MessagesService) MarkRead(ctx context.Context, id string) error {
	return s.c.put(ctx, "/messages/"+id+"/read", nil, nil)
}

// Conversations returns the per-counterpart summaries for the inbox view.
func (s *MessagesService) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var convs []model.Conversation
	if err := s.c.get(ctx, "/messages/conversations", &convs); err != nil {
		return nil, err
	}
	return convs, nil
}
