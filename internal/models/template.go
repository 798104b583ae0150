package models

import "time"

// LectureTemplate represents a weekly-recurring lecture definition. The day
// is stored as a full weekday name; matching against calendar dates is
// case-insensitive and also accepts the 3-letter abbreviation.
type LectureTemplate struct {
	ID           string    `db:"id" json:"id"`
	DayOfWeek    string    `db:"day_of_week" json:"day_of_week"`
	TimeSlot     string    `db:"time_slot" json:"time_slot"`
	FacultyID    string    `db:"faculty_id" json:"faculty_id"`
	FacultyEmail string    `db:"faculty_email" json:"faculty_email"`
	FacultyName  string    `db:"faculty_name" json:"faculty_name"`
	Subject      string    `db:"subject" json:"subject"`
	Room         string    `db:"room" json:"room"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TemplateFilter describes query params for listing lecture templates.
type TemplateFilter struct {
	DayOfWeek    string
	TimeSlot     string
	FacultyEmail string
	Room         string
	Subject      string
	Page         int
	PageSize     int
}

// SlotConflict describes an existing template that collides on a weekly slot.
type SlotConflict struct {
	TemplateID   string `json:"template_id"`
	DayOfWeek    string `json:"day_of_week"`
	TimeSlot     string `json:"time_slot"`
	FacultyID    string `json:"faculty_id"`
	FacultyEmail string `json:"faculty_email"`
	Subject      string `json:"subject"`
	Room         string `json:"room"`
	Dimension    string `json:"dimension"`
}

// SlotConflictError is returned when a template collides with an existing one.
type SlotConflictError struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Conflict SlotConflict   `json:"conflict"`
	Errors   []SlotConflict `json:"errors,omitempty"`
}

// Error implements the error interface for conflict errors.
func (e *SlotConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
