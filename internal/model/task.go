package model

import "time"

// Normalized task status values used by the backend.
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
	TaskOverdue    = "overdue"
)

// Task is a work item assigned to an intern.
type Task struct {
	// ID is the server-assigned identifier.
	ID string `json:"_id"`

	// Title is the human-readable summary.
	Title string `json:"title"`

	// Description is the full body text.
	Description string `json:"description"`

	// Status is one of the Task* constants.
	Status string `json:"status"`

	// Priority is "low", "medium" or "high".
	Priority string `json:"priority"`

	// AssignedTo is the intern the task belongs to.
	AssignedTo string `json:"assignedTo"`

	// AssignedBy is the admin who created the task.
	AssignedBy string `json:"assignedBy"`

	// DueDate is the deadline, if set.
	DueDate *time.Time `json:"dueDate,omitempty"`

	// Comments is the discussion thread on the task.
	Comments []TaskComment `json:"comments,omitempty"`

	// CreatedAt and UpdatedAt are server timestamps.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskComment is a single entry in a task's discussion thread.
type TaskComment struct {
	ID        string    `json:"_id"`
	Author    string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskStats summarizes task completion for a user, as returned by
// GET /tasks/stats/{userId}.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}
