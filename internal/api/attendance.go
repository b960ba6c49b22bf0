package api

import (
	"context"
	"net/url"
	"time"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// AttendanceService groups the /attendance endpoints.
type AttendanceService struct {
	c *Client
}

// AttendanceFilter narrows List results.
type AttendanceFilter struct {
	UserID string
	From   time.Time
	To     time.Time
}

func (f AttendanceFilter) query() string {
	v := url.Values{}
	if f.UserID != "" {
		v.Set("user", f.UserID)
	}
	if !f.From.IsZero() {
		v.Set("from", f.From.Format("2006-01-02"))
	}
	if !f.To.IsZero() {
		v.Set("to", f.To.Format("2006-01-02"))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// CheckIn records the start of the working day.
func (s *AttendanceService) CheckIn(ctx context.Context, notes string) (*model.Attendance, error) {
	body := map[string]string{}
	if notes != "" {
		body["notes"] = notes
	}
	var rec model.Attendance
	if err := s.c.post(ctx, "/attendance/checkin", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CheckOut records the end of the working day.
func (s *AttendanceService) CheckOut(ctx context.Context) (*model.Attendance, error) {
	var rec model.Attendance
	if err := s.c.put(ctx, "/attendance/checkout", nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns attendance records matching the filter.
func (s *AttendanceService) List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error) {
	var recs []model.Attendance
	if err := s.c.get(ctx, "/attendance"+filter.query(), &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// LeavePayload is the leave application request body.
type LeavePayload struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// RequestLeave submits a leave application.
func (s *AttendanceService) RequestLeave(ctx context.Context, payload LeavePayload) (*model.LeaveRequest, error) {
	var req model.LeaveRequest
	if err := s.c.post(ctx, "/attendance/leave", payload, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ReviewLeave approves or rejects a leave application (admin only).
func (s *AttendanceService) ReviewLeave(ctx context.Context, id, status string) (*model.LeaveRequest, error) {
	body := map[string]string{"status": status}
	var req model.LeaveRequest
	if err := s.c.put(ctx, "/attendance/leave/"+id, body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Stats returns attendance statistics. userID may be empty for the
// authenticated user.
func (s *AttendanceService) Stats(ctx context.Context, userID string) (*model.AttendanceStats, error) {
	path := "/attendance/stats"
	if userID != "" {
		path += "/" + userID
	}
	var stats model.AttendanceStats
	if err := s.c.get(ctx, path, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
