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

const templateColumns = "id, day_of_week, time_slot, faculty_id, faculty_email, faculty_name, subject, room, created_at, updated_at"

// dayOrder sorts templates Monday-first regardless of string ordering.
const dayOrder = `CASE day_of_week
	WHEN 'MONDAY' THEN 1
	WHEN 'TUESDAY' THEN 2
	WHEN 'WEDNESDAY' THEN 3
	WHEN 'THURSDAY' THEN 4
	WHEN 'FRIDAY' THEN 5
	WHEN 'SATURDAY' THEN 6
	WHEN 'SUNDAY' THEN 7
	ELSE 8 END`

// TemplateRepository provides persistence for lecture templates.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository creates a new lecture template repository.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// List returns templates with optional filtering and pagination, sorted by
// (day order, time slot).
func (r *TemplateRepository) List(ctx context.Context, filter models.TemplateFilter) ([]models.LectureTemplate, int, error) {
	base := "FROM lecture_templates WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.DayOfWeek != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.TimeSlot != "" {
		conditions = append(conditions, fmt.Sprintf("time_slot = $%d", len(args)+1))
		args = append(args, filter.TimeSlot)
	}
	if filter.FacultyEmail != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(faculty_email) = LOWER($%d)", len(args)+1))
		args = append(args, filter.FacultyEmail)
	}
	if filter.Room != "" {
		conditions = append(conditions, fmt.Sprintf("room = $%d", len(args)+1))
		args = append(args, filter.Room)
	}
	if filter.Subject != "" {
		conditions = append(conditions, fmt.Sprintf("subject ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Subject+"%")
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s, time_slot ASC LIMIT %d OFFSET %d", templateColumns, base, dayOrder, size, offset)
	var templates []models.LectureTemplate
	if err := r.db.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list lecture templates: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count lecture templates: %w", err)
	}

	return templates, total, nil
}

// ListAll loads the complete template snapshot used for occurrence expansion.
func (r *TemplateRepository) ListAll(ctx context.Context) ([]models.LectureTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM lecture_templates ORDER BY %s, time_slot ASC", templateColumns, dayOrder)
	var templates []models.LectureTemplate
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("load template snapshot: %w", err)
	}
	return templates, nil
}

// FindByID loads a template by id.
func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*models.LectureTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM lecture_templates WHERE id = $1", templateColumns)
	var tpl models.LectureTemplate
	if err := r.db.GetContext(ctx, &tpl, query, id); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// FindBySlot returns templates occupying the same weekly slot, used for
// collision validation on create and update.
func (r *TemplateRepository) FindBySlot(ctx context.Context, dayOfWeek, timeSlot string) ([]models.LectureTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM lecture_templates WHERE day_of_week = $1 AND time_slot = $2", templateColumns)
	var templates []models.LectureTemplate
	if err := r.db.SelectContext(ctx, &templates, query, dayOfWeek, timeSlot); err != nil {
		return nil, fmt.Errorf("find slot templates: %w", err)
	}
	return templates, nil
}

// Create inserts a new lecture template.
func (r *TemplateRepository) Create(ctx context.Context, tpl *models.LectureTemplate) error {
	now := time.Now().UTC()
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	const query = `INSERT INTO lecture_templates (id, day_of_week, time_slot, faculty_id, faculty_email, faculty_name, subject, room, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query, tpl.ID, tpl.DayOfWeek, tpl.TimeSlot, tpl.FacultyID, tpl.FacultyEmail, tpl.FacultyName, tpl.Subject, tpl.Room, tpl.CreatedAt, tpl.UpdatedAt); err != nil {
		return fmt.Errorf("create lecture template: %w", err)
	}
	return nil
}

// BulkCreate inserts multiple templates in a single transaction.
func (r *TemplateRepository) BulkCreate(ctx context.Context, templates []models.LectureTemplate) error {
	if len(templates) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create: %w", err)
	}
	const query = `INSERT INTO lecture_templates (id, day_of_week, time_slot, faculty_id, faculty_email, faculty_name, subject, room, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now().UTC()
	for i := range templates {
		tpl := &templates[i]
		if tpl.ID == "" {
			tpl.ID = uuid.NewString()
		}
		tpl.CreatedAt = now
		tpl.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, query, tpl.ID, tpl.DayOfWeek, tpl.TimeSlot, tpl.FacultyID, tpl.FacultyEmail, tpl.FacultyName, tpl.Subject, tpl.Room, tpl.CreatedAt, tpl.UpdatedAt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("bulk create lecture templates: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create: %w", err)
	}
	return nil
}

// Update modifies an existing template in place.
func (r *TemplateRepository) Update(ctx context.Context, tpl *models.LectureTemplate) error {
	tpl.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lecture_templates
		SET day_of_week = $2, time_slot = $3, faculty_id = $4, faculty_email = $5, faculty_name = $6, subject = $7, room = $8, updated_at = $9
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, tpl.ID, tpl.DayOfWeek, tpl.TimeSlot, tpl.FacultyID, tpl.FacultyEmail, tpl.FacultyName, tpl.Subject, tpl.Room, tpl.UpdatedAt); err != nil {
		return fmt.Errorf("update lecture template: %w", err)
	}
	return nil
}

// Delete removes a template by id.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM lecture_templates WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete lecture template: %w", err)
	}
	return nil
}
