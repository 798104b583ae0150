package models

import "time"

// InvigilationDuty represents a single-dated exam supervision assignment.
// Unlike lecture templates, duties are already concrete occurrences and are
// never expanded against a calendar window.
type InvigilationDuty struct {
	ID           string    `db:"id" json:"id"`
	Exam         string    `db:"exam" json:"exam"`
	ExamDate     string    `db:"exam_date" json:"exam_date"`
	TimeSlot     string    `db:"time_slot" json:"time_slot"`
	Venue        string    `db:"venue" json:"venue"`
	FacultyEmail string    `db:"faculty_email" json:"faculty_email"`
	Subject      string    `db:"subject" json:"subject"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DutyFilter describes query params for listing invigilation duties.
type DutyFilter struct {
	FacultyEmail string
	FromDate     string
	ToDate       string
	Exam         string
	Page         int
	PageSize     int
}
