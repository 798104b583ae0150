package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

type templateRepository interface {
	List(ctx context.Context, filter models.TemplateFilter) ([]models.LectureTemplate, int, error)
	ListAll(ctx context.Context) ([]models.LectureTemplate, error)
	FindByID(ctx context.Context, id string) (*models.LectureTemplate, error)
	FindBySlot(ctx context.Context, dayOfWeek, timeSlot string) ([]models.LectureTemplate, error)
	Create(ctx context.Context, tpl *models.LectureTemplate) error
	BulkCreate(ctx context.Context, templates []models.LectureTemplate) error
	Update(ctx context.Context, tpl *models.LectureTemplate) error
	Delete(ctx context.Context, id string) error
}

// canonicalDays maps accepted day spellings to the stored full name.
var canonicalDays = map[string]string{
	"monday": "MONDAY", "mon": "MONDAY",
	"tuesday": "TUESDAY", "tue": "TUESDAY",
	"wednesday": "WEDNESDAY", "wed": "WEDNESDAY",
	"thursday": "THURSDAY", "thu": "THURSDAY",
	"friday": "FRIDAY", "fri": "FRIDAY",
	"saturday": "SATURDAY", "sat": "SATURDAY",
	"sunday": "SUNDAY", "sun": "SUNDAY",
}

// CreateTemplateRequest describes payload for creating a lecture template.
type CreateTemplateRequest struct {
	DayOfWeek    string `json:"day_of_week" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required"`
	FacultyID    string `json:"faculty_id" validate:"required"`
	FacultyEmail string `json:"faculty_email" validate:"required,email"`
	FacultyName  string `json:"faculty_name" validate:"required"`
	Subject      string `json:"subject" validate:"required"`
	Room         string `json:"room"`
}

// UpdateTemplateRequest updates an existing template.
type UpdateTemplateRequest struct {
	DayOfWeek    string `json:"day_of_week" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required"`
	FacultyID    string `json:"faculty_id" validate:"required"`
	FacultyEmail string `json:"faculty_email" validate:"required,email"`
	FacultyName  string `json:"faculty_name" validate:"required"`
	Subject      string `json:"subject" validate:"required"`
	Room         string `json:"room"`
}

// BulkCreateTemplatesRequest holds multiple templates for creation.
type BulkCreateTemplatesRequest struct {
	Items          []CreateTemplateRequest `json:"items" validate:"required,min=1,dive"`
	PartialOnError bool                    `json:"partial_on_error"`
}

// BulkCreateTemplatesResult summarises bulk creation results.
type BulkCreateTemplatesResult struct {
	Created   []models.LectureTemplate `json:"created"`
	Conflicts []models.SlotConflict    `json:"conflicts,omitempty"`
}

// TemplateService coordinates lecture template management.
type TemplateService struct {
	repo      templateRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTemplateService instantiates TemplateService.
func NewTemplateService(repo templateRepository, validate *validator.Validate, logger *zap.Logger) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{repo: repo, validator: validate, logger: logger}
}

// List returns templates with pagination metadata.
func (s *TemplateService) List(ctx context.Context, filter models.TemplateFilter) ([]models.LectureTemplate, *models.Pagination, error) {
	if filter.DayOfWeek != "" {
		day, err := normalizeDay(filter.DayOfWeek)
		if err != nil {
			return nil, nil, err
		}
		filter.DayOfWeek = day
	}
	templates, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list templates")
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
	return templates, pagination, nil
}

// Get loads a template by id.
func (s *TemplateService) Get(ctx context.Context, id string) (*models.LectureTemplate, error) {
	tpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	return tpl, nil
}

// Create inserts a new template after weekly-slot conflict detection.
func (s *TemplateService) Create(ctx context.Context, req CreateTemplateRequest) (*models.LectureTemplate, error) {
	tpl, err := s.buildTemplate(req)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoSlotConflict(ctx, *tpl, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create template")
	}
	return tpl, nil
}

// Update modifies an existing template.
func (s *TemplateService) Update(ctx context.Context, id string, req UpdateTemplateRequest) (*models.LectureTemplate, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}

	updated, err := s.buildTemplate(CreateTemplateRequest(req))
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.ensureNoSlotConflict(ctx, *updated, existing.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update template")
	}
	return updated, nil
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	return nil
}

// BulkCreate inserts multiple templates optionally allowing partial completion.
func (s *TemplateService) BulkCreate(ctx context.Context, req BulkCreateTemplatesRequest) (*BulkCreateTemplatesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk template payload")
	}

	var toCreate []models.LectureTemplate
	var conflicts []models.SlotConflict

	for _, item := range req.Items {
		tpl, err := s.buildTemplate(item)
		if err != nil {
			return nil, err
		}
		if err := s.ensureNoSlotConflict(ctx, *tpl, ""); err != nil {
			if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrConflict.Code {
				var domainErr *models.SlotConflictError
				if errors.As(err, &domainErr) {
					conflicts = append(conflicts, domainErr.Conflict)
				}
				if !req.PartialOnError {
					return nil, err
				}
				continue
			}
			return nil, err
		}
		toCreate = append(toCreate, *tpl)
	}

	if len(toCreate) > 0 {
		if err := s.repo.BulkCreate(ctx, toCreate); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to bulk create templates")
		}
	}

	return &BulkCreateTemplatesResult{Created: toCreate, Conflicts: conflicts}, nil
}

func (s *TemplateService) buildTemplate(req CreateTemplateRequest) (*models.LectureTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
	}
	day, err := normalizeDay(req.DayOfWeek)
	if err != nil {
		return nil, err
	}
	return &models.LectureTemplate{
		DayOfWeek:    day,
		TimeSlot:     strings.TrimSpace(req.TimeSlot),
		FacultyID:    strings.TrimSpace(req.FacultyID),
		FacultyEmail: strings.ToLower(strings.TrimSpace(req.FacultyEmail)),
		FacultyName:  strings.TrimSpace(req.FacultyName),
		Subject:      strings.TrimSpace(req.Subject),
		Room:         strings.TrimSpace(req.Room),
	}, nil
}

// ensureNoSlotConflict rejects templates that would double-book a room or a
// faculty member on the same weekly slot.
func (s *TemplateService) ensureNoSlotConflict(ctx context.Context, tpl models.LectureTemplate, ignoreID string) error {
	existing, err := s.repo.FindBySlot(ctx, tpl.DayOfWeek, tpl.TimeSlot)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot conflicts")
	}

	for _, item := range existing {
		if item.ID == ignoreID {
			continue
		}
		if tpl.Room != "" && tpl.Room == item.Room {
			return s.wrapSlotConflict("ROOM", "room already booked for this slot", item)
		}
		if tpl.FacultyID != "" && tpl.FacultyID == item.FacultyID {
			return s.wrapSlotConflict("FACULTY", "faculty already scheduled for this slot", item)
		}
		if strings.EqualFold(tpl.FacultyEmail, item.FacultyEmail) {
			return s.wrapSlotConflict("FACULTY", "faculty already scheduled for this slot", item)
		}
	}
	return nil
}

func (s *TemplateService) wrapSlotConflict(conflictType, message string, existing models.LectureTemplate) error {
	conflict := models.SlotConflict{
		TemplateID:   existing.ID,
		DayOfWeek:    existing.DayOfWeek,
		TimeSlot:     existing.TimeSlot,
		FacultyID:    existing.FacultyID,
		FacultyEmail: existing.FacultyEmail,
		Subject:      existing.Subject,
		Room:         existing.Room,
		Dimension:    conflictType,
	}
	domainErr := &models.SlotConflictError{Type: conflictType, Message: message, Conflict: conflict}
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, fmt.Sprintf("slot conflict: %s", message))
}

// normalizeDay canonicalises a weekday to its stored full name. Abbreviated
// and mixed-case input is accepted; anything else is a validation error at
// write time (read-side matching stays lenient).
func normalizeDay(day string) (string, error) {
	canonical, ok := canonicalDays[strings.ToLower(strings.TrimSpace(day))]
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unrecognized day of week: %q", day))
	}
	return canonical, nil
}
