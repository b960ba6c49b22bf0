package model

import "time"

// Attendance is a single day's check-in/check-out record.
type Attendance struct {
	ID       string     `json:"_id"`
	User     string     `json:"user"`
	Date     time.Time  `json:"date"`
	CheckIn  *time.Time `json:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty"`

	// Status is "present", "absent", "late" or "leave".
	Status string `json:"status"`

	// Hours is the computed working duration for the day.
	Hours float64 `json:"workingHours"`

	Notes string `json:"notes,omitempty"`
}

// LeaveRequest is a pending or resolved leave application.
type LeaveRequest struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"reason"`

	// Status is "pending", "approved" or "rejected".
	Status string `json:"status"`

	ReviewedBy string `json:"reviewedBy,omitempty"`
}

// AttendanceStats summarizes attendance for a user, as returned by
// GET /attendance/stats/{userId}.
type AttendanceStats struct {
	PresentDays int     `json:"presentDays"`
	AbsentDays  int     `json:"absentDays"`
	LateDays    int     `json:"lateDays"`
	LeaveDays   int     `json:"leaveDays"`
	TotalHours  float64 `json:"totalHours"`
}
