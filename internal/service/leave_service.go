package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/schedule"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

type leaveRepository interface {
	List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveRequest, int, error)
	FindByID(ctx context.Context, id string) (*models.LeaveRequest, error)
	Create(ctx context.Context, req *models.LeaveRequest) error
	UpdateStatus(ctx context.Context, id string, status models.LeaveStatus, decidedBy string, decidedAt time.Time) error
}

// CreateLeaveRequest describes the payload for filing a leave request.
type CreateLeaveRequest struct {
	FromDate string `json:"from_date" validate:"required"`
	ToDate   string `json:"to_date" validate:"required"`
	Reason   string `json:"reason" validate:"required,max=500"`
}

// LeaveService manages the leave ledger. Requests are created PENDING and can
// only be decided once.
type LeaveService struct {
	repo      leaveRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewLeaveService constructs the service.
func NewLeaveService(repo leaveRepository, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// List returns leave requests with pagination metadata.
func (s *LeaveService) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveRequest, *models.Pagination, error) {
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list leave requests")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	return requests, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Create files a new PENDING leave request for the given faculty member.
func (s *LeaveService) Create(ctx context.Context, facultyEmail string, req CreateLeaveRequest) (*models.LeaveRequest, error) {
	facultyEmail = strings.ToLower(strings.TrimSpace(facultyEmail))
	if facultyEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty email is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave payload")
	}
	from, err := time.Parse(schedule.DateLayout, req.FromDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "from_date must be formatted YYYY-MM-DD")
	}
	to, err := time.Parse(schedule.DateLayout, req.ToDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to_date must be formatted YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to_date must not precede from_date")
	}

	leave := &models.LeaveRequest{
		FacultyEmail: facultyEmail,
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		Reason:       strings.TrimSpace(req.Reason),
	}
	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create leave request")
	}
	return leave, nil
}

// Approve marks a pending request APPROVED.
func (s *LeaveService) Approve(ctx context.Context, id, decidedBy string) (*models.LeaveRequest, error) {
	return s.decide(ctx, id, decidedBy, models.LeaveApproved)
}

// Reject marks a pending request REJECTED.
func (s *LeaveService) Reject(ctx context.Context, id, decidedBy string) (*models.LeaveRequest, error) {
	return s.decide(ctx, id, decidedBy, models.LeaveRejected)
}

func (s *LeaveService) decide(ctx context.Context, id, decidedBy string, status models.LeaveStatus) (*models.LeaveRequest, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave request")
	}
	if existing.Status != models.LeavePending {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("leave request already %s", strings.ToLower(string(existing.Status))))
	}

	decidedAt := s.now()
	if err := s.repo.UpdateStatus(ctx, id, status, decidedBy, decidedAt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update leave status")
	}

	existing.Status = status
	existing.DecidedBy = &decidedBy
	existing.DecidedAt = &decidedAt
	existing.UpdatedAt = decidedAt
	return existing, nil
}
