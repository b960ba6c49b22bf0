package model

import "time"

// Notification kinds produced by the backend.
const (
	NotificationTask         = "task"
	NotificationAttendance   = "attendance"
	NotificationEvaluation   = "evaluation"
	NotificationMessage      = "message"
	NotificationAnnouncement = "announcement"
	NotificationSystem       = "system"
)

// Notification represents an alert surfaced to the user about activity
// in the system. The read flag is mutated locally only after the server
// has confirmed the corresponding update.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"_id"`

	// Type is one of the Notification* kind constants.
	Type string `json:"type"`

	// Title is the short heading.
	Title string `json:"title"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Link optionally points to the related entity view.
	Link string `json:"link,omitempty"`

	// IsRead indicates whether the user has seen this notification.
	IsRead bool `json:"isRead"`

	// Priority is "low", "medium" or "high".
	Priority string `json:"priority"`

	// CreatedBy is the ID of the originating user, if any.
	CreatedBy string `json:"createdBy,omitempty"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"createdAt"`
}
