package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/schedule"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

type invigilationRepository interface {
	List(ctx context.Context, filter models.DutyFilter) ([]models.InvigilationDuty, int, error)
	FindByID(ctx context.Context, id string) (*models.InvigilationDuty, error)
	Create(ctx context.Context, duty *models.InvigilationDuty) error
	Update(ctx context.Context, duty *models.InvigilationDuty) error
	Delete(ctx context.Context, id string) error
}

// CreateDutyRequest describes payload for creating an invigilation duty.
type CreateDutyRequest struct {
	Exam         string `json:"exam" validate:"required"`
	ExamDate     string `json:"exam_date" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required"`
	Venue        string `json:"venue"`
	FacultyEmail string `json:"faculty_email" validate:"required,email"`
	Subject      string `json:"subject" validate:"required"`
}

// InvigilationService manages invigilation duties.
type InvigilationService struct {
	repo      invigilationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInvigilationService constructs the service.
func NewInvigilationService(repo invigilationRepository, validate *validator.Validate, logger *zap.Logger) *InvigilationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvigilationService{repo: repo, validator: validate, logger: logger}
}

// List returns duties with pagination metadata.
func (s *InvigilationService) List(ctx context.Context, filter models.DutyFilter) ([]models.InvigilationDuty, *models.Pagination, error) {
	duties, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list duties")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return duties, pagination, nil
}

// Upcoming returns a faculty member's duties from today onward.
func (s *InvigilationService) Upcoming(ctx context.Context, facultyEmail string, from time.Time, limit int) ([]models.InvigilationDuty, error) {
	if limit <= 0 {
		limit = 10
	}
	duties, _, err := s.repo.List(ctx, models.DutyFilter{
		FacultyEmail: facultyEmail,
		FromDate:     from.Format(schedule.DateLayout),
		PageSize:     limit,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list upcoming duties")
	}
	return duties, nil
}

// Create registers a new duty.
func (s *InvigilationService) Create(ctx context.Context, req CreateDutyRequest) (*models.InvigilationDuty, error) {
	duty, err := s.buildDuty(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, duty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create duty")
	}
	return duty, nil
}

// Update modifies an existing duty.
func (s *InvigilationService) Update(ctx context.Context, id string, req CreateDutyRequest) (*models.InvigilationDuty, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "duty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duty")
	}

	duty, err := s.buildDuty(req)
	if err != nil {
		return nil, err
	}
	duty.ID = existing.ID
	duty.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, duty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update duty")
	}
	return duty, nil
}

// Delete removes a duty.
func (s *InvigilationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "duty not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duty")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete duty")
	}
	return nil
}

func (s *InvigilationService) buildDuty(req CreateDutyRequest) (*models.InvigilationDuty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid duty payload")
	}
	if _, err := time.Parse(schedule.DateLayout, req.ExamDate); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam_date must be formatted YYYY-MM-DD")
	}
	return &models.InvigilationDuty{
		Exam:         strings.TrimSpace(req.Exam),
		ExamDate:     req.ExamDate,
		TimeSlot:     strings.TrimSpace(req.TimeSlot),
		Venue:        strings.TrimSpace(req.Venue),
		FacultyEmail: strings.ToLower(strings.TrimSpace(req.FacultyEmail)),
		Subject:      strings.TrimSpace(req.Subject),
	}, nil
}
