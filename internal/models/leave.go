package models

import "time"

// LeaveStatus enumerates the lifecycle states of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// LeaveRequest captures a faculty absence request in the leave ledger.
type LeaveRequest struct {
	ID           string      `db:"id" json:"id"`
	FacultyEmail string      `db:"faculty_email" json:"faculty_email"`
	FromDate     string      `db:"from_date" json:"from_date"`
	ToDate       string      `db:"to_date" json:"to_date"`
	Reason       string      `db:"reason" json:"reason"`
	Status       LeaveStatus `db:"status" json:"status"`
	DecidedBy    *string     `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt    *time.Time  `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// LeaveFilter describes query params for listing leave requests.
type LeaveFilter struct {
	FacultyEmail string
	Status       *LeaveStatus
	Page         int
	PageSize     int
}
