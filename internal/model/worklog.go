package model

import "time"

// WorkLog is a daily report submitted by an intern.
type WorkLog struct {
	ID          string    `json:"_id"`
	User        string    `json:"user"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hours       float64   `json:"hoursWorked"`

	// Feedback is the supervisor's response, set via
	// PUT /worklogs/{id}/feedback.
	Feedback string `json:"feedback,omitempty"`

	// Rating accompanies feedback, 1-5.
	Rating int `json:"rating,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Evaluation is a periodic performance review of an intern. Drafts are
// invisible to the intern until published.
type Evaluation struct {
	ID       string `json:"_id"`
	Intern   string `json:"intern"`
	Reviewer string `json:"evaluator"`

	// Period is e.g. "2026-08" or "Q2".
	Period string `json:"period"`

	// Scores maps criterion name to a 1-5 score.
	Scores map[string]int `json:"scores"`

	OverallScore float64 `json:"overallScore"`
	Comments     string  `json:"comments,omitempty"`

	// IsPublished gates intern visibility, flipped via
	// PUT /evaluations/{id}/publish.
	IsPublished bool `json:"isPublished"`

	CreatedAt time.Time `json:"createdAt"`
}
