package dto

import "github.com/acadhub/faculty-timetable-api/internal/models"

// AdminDashboardResponse summarises the state of the timetable for admins.
type AdminDashboardResponse struct {
	Date             string         `json:"date"`
	WindowDays       int            `json:"window_days"`
	TemplateCount    int            `json:"template_count"`
	OccurrenceCount  int            `json:"occurrence_count"`
	RoomConflicts    int            `json:"room_conflicts"`
	FacultyConflicts int            `json:"faculty_conflicts"`
	RoomUsage        map[string]int `json:"room_usage"`
	Workload         map[string]int `json:"workload"`
	PendingLeave     int            `json:"pending_leave"`
}

// FacultyDashboardResponse summarises one faculty member's day.
type FacultyDashboardResponse struct {
	FacultyEmail   string                    `json:"faculty_email"`
	Date           string                    `json:"date"`
	TodayLectures  int                       `json:"today_lectures"`
	WeekLectures   int                       `json:"week_lectures"`
	UpcomingDuties []models.InvigilationDuty `json:"upcoming_duties"`
	PendingLeave   int                       `json:"pending_leave"`
	UnreadMessages int                       `json:"unread_messages"`
}
