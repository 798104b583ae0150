package dto

import "github.com/acadhub/faculty-timetable-api/internal/schedule"

// AdminRosterResponse is the full expanded view for admin pages: every
// occurrence in the window plus the derived conflict and utilization data.
type AdminRosterResponse struct {
	WindowStart string                `json:"window_start"`
	WindowDays  int                   `json:"window_days"`
	Occurrences []schedule.Occurrence `json:"occurrences"`
	Conflicts   []schedule.Conflict   `json:"conflicts"`
	RoomUsage   map[string]int        `json:"room_usage"`
	Workload    map[string]int        `json:"workload"`
}

// FacultyRosterResponse is one faculty member's upcoming schedule.
type FacultyRosterResponse struct {
	FacultyEmail string                `json:"faculty_email"`
	WindowStart  string                `json:"window_start"`
	WindowDays   int                   `json:"window_days"`
	Occurrences  []schedule.Occurrence `json:"occurrences"`
}
