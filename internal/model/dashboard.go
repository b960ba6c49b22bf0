package model

// AdminDashboard is the aggregate returned by GET /dashboard/admin.
type AdminDashboard struct {
	TotalInterns    int            `json:"totalInterns"`
	ActiveInterns   int            `json:"activeInterns"`
	PresentToday    int            `json:"presentToday"`
	PendingLeaves   int            `json:"pendingLeaves"`
	TaskStats       TaskStats      `json:"taskStats"`
	RecentWorkLogs  []WorkLog      `json:"recentWorkLogs,omitempty"`
	RecentActivity  []Notification `json:"recentActivity,omitempty"`
	TopPerformers   []User         `json:"topPerformers,omitempty"`
}

// InternDashboard is the aggregate returned by GET /dashboard/intern.
type InternDashboard struct {
	TaskStats       TaskStats       `json:"taskStats"`
	AttendanceStats AttendanceStats `json:"attendanceStats"`
	UpcomingTasks   []Task          `json:"upcomingTasks,omitempty"`
	RecentFeedback  []WorkLog       `json:"recentFeedback,omitempty"`
	Announcements   []Announcement  `json:"announcements,omitempty"`
}
