package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/dto"
	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/schedule"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

type templateSnapshotLoader interface {
	ListAll(ctx context.Context) ([]models.LectureTemplate, error)
}

// RosterServiceConfig sets the default expansion horizons.
type RosterServiceConfig struct {
	AdminWindowDays   int
	FacultyWindowDays int
}

// RosterService turns the lecture template snapshot into dated occurrence
// views. All computation happens on one snapshot fetched at the start of the
// request; concurrent template edits simply do not affect an in-flight view.
type RosterService struct {
	templates templateSnapshotLoader
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
	cfg       RosterServiceConfig
}

// NewRosterService constructs a RosterService with sane defaults.
func NewRosterService(templates templateSnapshotLoader, metrics *MetricsService, logger *zap.Logger, cfg RosterServiceConfig) *RosterService {
	if cfg.AdminWindowDays <= 0 {
		cfg.AdminWindowDays = 14
	}
	if cfg.FacultyWindowDays <= 0 {
		cfg.FacultyWindowDays = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		templates: templates,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// AdminRoster expands every template over the admin window and derives the
// conflict and utilization views.
func (s *RosterService) AdminRoster(ctx context.Context, windowDays int) (*dto.AdminRosterResponse, error) {
	if windowDays == 0 {
		windowDays = s.cfg.AdminWindowDays
	}

	templates, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := s.now()
	began := time.Now()
	occurrences, err := schedule.ExpandAndSort(templates, start, windowDays)
	if err != nil {
		return nil, err
	}
	conflicts := schedule.DetectConflicts(occurrences)
	if s.metrics != nil {
		s.metrics.ObserveExpansion(time.Since(began), len(occurrences))
		s.metrics.RecordConflicts(len(conflicts))
	}

	return &dto.AdminRosterResponse{
		WindowStart: start.Format(schedule.DateLayout),
		WindowDays:  windowDays,
		Occurrences: occurrences,
		Conflicts:   conflicts,
		RoomUsage:   schedule.UtilizationByRoom(occurrences),
		Workload:    schedule.WorkloadByFaculty(occurrences),
	}, nil
}

// FacultyRoster expands templates over the faculty window and keeps one
// member's occurrences.
func (s *RosterService) FacultyRoster(ctx context.Context, facultyEmail string, windowDays int) (*dto.FacultyRosterResponse, error) {
	facultyEmail = strings.TrimSpace(facultyEmail)
	if facultyEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty email is required")
	}
	if windowDays == 0 {
		windowDays = s.cfg.FacultyWindowDays
	}

	templates, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := s.now()
	began := time.Now()
	occurrences, err := schedule.OccurrencesForFaculty(templates, start, windowDays, facultyEmail)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveExpansion(time.Since(began), len(occurrences))
	}

	return &dto.FacultyRosterResponse{
		FacultyEmail: strings.ToLower(facultyEmail),
		WindowStart:  start.Format(schedule.DateLayout),
		WindowDays:   windowDays,
		Occurrences:  occurrences,
	}, nil
}

// Conflicts exposes conflict detection over the admin window.
func (s *RosterService) Conflicts(ctx context.Context, windowDays int) ([]schedule.Conflict, error) {
	roster, err := s.AdminRoster(ctx, windowDays)
	if err != nil {
		return nil, err
	}
	return roster.Conflicts, nil
}

func (s *RosterService) snapshot(ctx context.Context) ([]models.LectureTemplate, error) {
	templates, err := s.templates.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load template snapshot")
	}
	return templates, nil
}
