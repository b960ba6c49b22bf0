package model

import "time"

// Message is a direct message between two users.
type Message struct {
	ID        string    `json:"_id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Conversation groups the message history with one counterpart, as
// returned by GET /messages/conversations.
type Conversation struct {
	User        User     `json:"user"`
	LastMessage *Message `json:"lastMessage,omitempty"`
	UnreadCount int      `json:"unreadCount"`
}

// Announcement is a broadcast notice posted by an admin.
type Announcement struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"createdBy"`
	Priority string `json:"priority"`

	// ReadBy lists user IDs that have acknowledged the announcement.
	ReadBy []string `json:"readBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
