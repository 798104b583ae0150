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

const dutyColumns = "id, exam, exam_date, time_slot, venue, faculty_email, subject, created_at, updated_at"

// InvigilationRepository provides persistence for invigilation duties.
type InvigilationRepository struct {
	db *sqlx.DB
}

// NewInvigilationRepository creates a new invigilation repository.
func NewInvigilationRepository(db *sqlx.DB) *InvigilationRepository {
	return &InvigilationRepository{db: db}
}

// List returns duties with optional filtering, sorted by (exam_date, time_slot).
func (r *InvigilationRepository) List(ctx context.Context, filter models.DutyFilter) ([]models.InvigilationDuty, int, error) {
	base := "FROM invigilation_duties WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.FacultyEmail != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(faculty_email) = LOWER($%d)", len(args)+1))
		args = append(args, filter.FacultyEmail)
	}
	if filter.FromDate != "" {
		conditions = append(conditions, fmt.Sprintf("exam_date >= $%d", len(args)+1))
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		conditions = append(conditions, fmt.Sprintf("exam_date <= $%d", len(args)+1))
		args = append(args, filter.ToDate)
	}
	if filter.Exam != "" {
		conditions = append(conditions, fmt.Sprintf("exam ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Exam+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY exam_date ASC, time_slot ASC LIMIT %d OFFSET %d", dutyColumns, base, size, offset)
	var duties []models.InvigilationDuty
	if err := r.db.SelectContext(ctx, &duties, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list invigilation duties: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count invigilation duties: %w", err)
	}

	return duties, total, nil
}

// FindByID loads a duty by id.
func (r *InvigilationRepository) FindByID(ctx context.Context, id string) (*models.InvigilationDuty, error) {
	query := fmt.Sprintf("SELECT %s FROM invigilation_duties WHERE id = $1", dutyColumns)
	var duty models.InvigilationDuty
	if err := r.db.GetContext(ctx, &duty, query, id); err != nil {
		return nil, err
	}
	return &duty, nil
}

// Create inserts a new duty.
func (r *InvigilationRepository) Create(ctx context.Context, duty *models.InvigilationDuty) error {
	now := time.Now().UTC()
	if duty.ID == "" {
		duty.ID = uuid.NewString()
	}
	duty.CreatedAt = now
	duty.UpdatedAt = now

	const query = `INSERT INTO invigilation_duties (id, exam, exam_date, time_slot, venue, faculty_email, subject, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query, duty.ID, duty.Exam, duty.ExamDate, duty.TimeSlot, duty.Venue, duty.FacultyEmail, duty.Subject, duty.CreatedAt, duty.UpdatedAt); err != nil {
		return fmt.Errorf("create invigilation duty: %w", err)
	}
	return nil
}

// Update modifies an existing duty.
func (r *InvigilationRepository) Update(ctx context.Context, duty *models.InvigilationDuty) error {
	duty.UpdatedAt = time.Now().UTC()
	const query = `UPDATE invigilation_duties
		SET exam = $2, exam_date = $3, time_slot = $4, venue = $5, faculty_email = $6, subject = $7, updated_at = $8
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, duty.ID, duty.Exam, duty.ExamDate, duty.TimeSlot, duty.Venue, duty.FacultyEmail, duty.Subject, duty.UpdatedAt); err != nil {
		return fmt.Errorf("update invigilation duty: %w", err)
	}
	return nil
}

// Delete removes a duty by id.
func (r *InvigilationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM invigilation_duties WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete invigilation duty: %w", err)
	}
	return nil
}
