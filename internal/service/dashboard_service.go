package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/dto"
	"github.com/acadhub/faculty-timetable-api/internal/models"
	"github.com/acadhub/faculty-timetable-api/internal/schedule"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

const (
	adminDashboardKeyFormat   = "dash:admin:%s:%d"
	facultyDashboardKeyFormat = "dash:faculty:%s:%s"

	upcomingDutyLimit = 5
)

type dashboardLeaveRepository interface {
	List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveRequest, int, error)
}

type dashboardDutyRepository interface {
	List(ctx context.Context, filter models.DutyFilter) ([]models.InvigilationDuty, int, error)
}

type dashboardMessageRepository interface {
	UnreadCount(ctx context.Context, recipientEmail string) (int, error)
}

// DashboardService assembles the admin and faculty landing views. Admin
// summaries are expensive to compute, so they are cached per calendar day.
type DashboardService struct {
	roster    *RosterService
	templates templateSnapshotLoader
	leaves    dashboardLeaveRepository
	duties    dashboardDutyRepository
	messages  dashboardMessageRepository
	cache     *CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(
	roster *RosterService,
	templates templateSnapshotLoader,
	leaves dashboardLeaveRepository,
	duties dashboardDutyRepository,
	messages dashboardMessageRepository,
	cache *CacheService,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		roster:    roster,
		templates: templates,
		leaves:    leaves,
		duties:    duties,
		messages:  messages,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// AdminDashboard summarises the timetable over the admin roster window.
func (s *DashboardService) AdminDashboard(ctx context.Context, windowDays int) (*dto.AdminDashboardResponse, error) {
	if windowDays == 0 {
		windowDays = s.roster.cfg.AdminWindowDays
	}
	date := s.now().Format(schedule.DateLayout)
	cacheKey := fmt.Sprintf(adminDashboardKeyFormat, date, windowDays)

	var cached dto.AdminDashboardResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	roster, err := s.roster.AdminRoster(ctx, windowDays)
	if err != nil {
		return nil, err
	}

	templates, err := s.templates.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load template snapshot")
	}

	pendingLeave, err := s.pendingLeaveCount(ctx, "")
	if err != nil {
		return nil, err
	}

	roomConflicts, facultyConflicts := 0, 0
	for _, c := range roster.Conflicts {
		switch c.Kind {
		case schedule.RoomConflict:
			roomConflicts++
		case schedule.FacultyConflict:
			facultyConflicts++
		}
	}

	resp := &dto.AdminDashboardResponse{
		Date:             date,
		WindowDays:       windowDays,
		TemplateCount:    len(templates),
		OccurrenceCount:  len(roster.Occurrences),
		RoomConflicts:    roomConflicts,
		FacultyConflicts: facultyConflicts,
		RoomUsage:        roster.RoomUsage,
		Workload:         roster.Workload,
		PendingLeave:     pendingLeave,
	}

	if err := s.cache.Set(ctx, cacheKey, resp, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache admin dashboard", zap.Error(err))
	}
	return resp, nil
}

// FacultyDashboard summarises one faculty member's day and week.
func (s *DashboardService) FacultyDashboard(ctx context.Context, facultyEmail string) (*dto.FacultyDashboardResponse, error) {
	facultyEmail = strings.ToLower(strings.TrimSpace(facultyEmail))
	if facultyEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty email is required")
	}

	now := s.now()
	date := now.Format(schedule.DateLayout)
	cacheKey := fmt.Sprintf(facultyDashboardKeyFormat, facultyEmail, date)

	var cached dto.FacultyDashboardResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	roster, err := s.roster.FacultyRoster(ctx, facultyEmail, 6)
	if err != nil {
		return nil, err
	}
	todayLectures := 0
	for _, occ := range roster.Occurrences {
		if occ.Date == date {
			todayLectures++
		}
	}

	duties, _, err := s.duties.List(ctx, models.DutyFilter{
		FacultyEmail: facultyEmail,
		FromDate:     date,
		PageSize:     upcomingDutyLimit,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load invigilation duties")
	}

	pendingLeave, err := s.pendingLeaveCount(ctx, facultyEmail)
	if err != nil {
		return nil, err
	}

	unread, err := s.messages.UnreadCount(ctx, facultyEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to count unread messages")
	}

	resp := &dto.FacultyDashboardResponse{
		FacultyEmail:   facultyEmail,
		Date:           date,
		TodayLectures:  todayLectures,
		WeekLectures:   len(roster.Occurrences),
		UpcomingDuties: duties,
		PendingLeave:   pendingLeave,
		UnreadMessages: unread,
	}

	if err := s.cache.Set(ctx, cacheKey, resp, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache faculty dashboard", zap.Error(err))
	}
	return resp, nil
}

// InvalidateAdmin drops cached admin dashboards after template mutations.
func (s *DashboardService) InvalidateAdmin(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "dash:admin:*"); err != nil {
		s.logger.Warn("failed to invalidate admin dashboard cache", zap.Error(err))
	}
}

func (s *DashboardService) pendingLeaveCount(ctx context.Context, facultyEmail string) (int, error) {
	status := models.LeavePending
	_, total, err := s.leaves.List(ctx, models.LeaveFilter{
		FacultyEmail: facultyEmail,
		Status:       &status,
		PageSize:     1,
	})
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to count pending leave")
	}
	return total, nil
}
