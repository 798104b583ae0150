package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acadhub/faculty-timetable-api/internal/models"
)

const leaveColumns = "id, faculty_email, from_date, to_date, reason, status, decided_by, decided_at, created_at, updated_at"

// LeaveRepository provides persistence for the leave ledger.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository creates a new leave repository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// List returns leave requests with optional filtering, newest first.
func (r *LeaveRepository) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveRequest, int, error) {
	base := "FROM leave_requests WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.FacultyEmail != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(faculty_email) = LOWER($%d)", len(args)+1))
		args = append(args, filter.FacultyEmail)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", leaveColumns, base, size, offset)
	var requests []models.LeaveRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list leave requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}

	return requests, total, nil
}

// FindByID loads a leave request by id.
func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM leave_requests WHERE id = $1", leaveColumns)
	var req models.LeaveRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a new leave request with PENDING status.
func (r *LeaveRepository) Create(ctx context.Context, req *models.LeaveRequest) error {
	now := time.Now().UTC()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Status = models.LeavePending
	req.CreatedAt = now
	req.UpdatedAt = now

	const query = `INSERT INTO leave_requests (id, faculty_email, from_date, to_date, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query, req.ID, req.FacultyEmail, req.FromDate, req.ToDate, req.Reason, req.Status, req.CreatedAt, req.UpdatedAt); err != nil {
		return fmt.Errorf("create leave request: %w", err)
	}
	return nil
}

// UpdateStatus records an admin decision on a pending request.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, status models.LeaveStatus, decidedBy string, decidedAt time.Time) error {
	const query = `UPDATE leave_requests SET status = $2, decided_by = $3, decided_at = $4, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, decidedBy, decidedAt); err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	return nil
}
