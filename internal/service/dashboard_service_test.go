package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

type mockDutyLister struct {
	duties []models.InvigilationDuty
}

func (m *mockDutyLister) List(ctx context.Context, filter models.DutyFilter) ([]models.InvigilationDuty, int, error) {
	return m.duties, len(m.duties), nil
}

func newDashboardServiceForTest(t *testing.T, loader *mockTemplateLoader, leaves *mockLeaveRepo, duties *mockDutyLister, messages *mockMessageRepo) *DashboardService {
	t.Helper()
	roster := newRosterServiceForTest(loader)
	cache := NewCacheService(nil, nil, time.Minute, zap.NewNop(), false)
	svc := NewDashboardService(roster, loader, leaves, duties, messages, cache, time.Minute, zap.NewNop())
	svc.now = fixedMonday
	return svc
}

func TestAdminDashboardSummarisesWindow(t *testing.T) {
	loader := &mockTemplateLoader{templates: rosterFixtures()}
	leaves := &mockLeaveRepo{requests: []models.LeaveRequest{
		{ID: "leave-1", Status: models.LeavePending},
		{ID: "leave-2", Status: models.LeavePending},
	}}
	svc := newDashboardServiceForTest(t, loader, leaves, &mockDutyLister{}, &mockMessageRepo{})

	dash, err := svc.AdminDashboard(context.Background(), 6)
	require.NoError(t, err)

	assert.Equal(t, "2026-02-02", dash.Date)
	assert.Equal(t, 3, dash.TemplateCount)
	assert.Equal(t, 3, dash.OccurrenceCount)
	assert.Equal(t, 1, dash.RoomConflicts)
	assert.Equal(t, 0, dash.FacultyConflicts)
	assert.Equal(t, 2, dash.PendingLeave)
}

func TestFacultyDashboardCountsTodayAndWeek(t *testing.T) {
	loader := &mockTemplateLoader{templates: rosterFixtures()}
	duties := &mockDutyLister{duties: []models.InvigilationDuty{{
		ID:           "duty-1",
		Exam:         "Mid Semester",
		ExamDate:     "2026-02-10",
		FacultyEmail: "asha@college.edu",
	}}}
	messages := &mockMessageRepo{unread: 4}
	svc := newDashboardServiceForTest(t, loader, &mockLeaveRepo{}, duties, messages)

	dash, err := svc.FacultyDashboard(context.Background(), "Asha@College.EDU")
	require.NoError(t, err)

	assert.Equal(t, "asha@college.edu", dash.FacultyEmail)
	// Monday start: one lecture today, two across the seven-date week.
	assert.Equal(t, 1, dash.TodayLectures)
	assert.Equal(t, 2, dash.WeekLectures)
	require.Len(t, dash.UpcomingDuties, 1)
	assert.Equal(t, "Mid Semester", dash.UpcomingDuties[0].Exam)
	assert.Equal(t, 4, dash.UnreadMessages)
}

func TestAdminDashboardInvalidationDropsStaleSummary(t *testing.T) {
	loader := &mockTemplateLoader{templates: rosterFixtures()[:1]}
	roster := newRosterServiceForTest(loader)
	cacheRepo := &memoryCacheRepo{entries: map[string][]byte{}}
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(roster, loader, &mockLeaveRepo{}, &mockDutyLister{}, &mockMessageRepo{}, cache, time.Minute, zap.NewNop())
	svc.now = fixedMonday

	first, err := svc.AdminDashboard(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TemplateCount)

	// A template added after the first load stays invisible while the
	// cached summary is live.
	loader.templates = rosterFixtures()
	cached, err := svc.AdminDashboard(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.TemplateCount)

	svc.InvalidateAdmin(context.Background())

	fresh, err := svc.AdminDashboard(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.TemplateCount)
}

func TestFacultyDashboardRequiresEmail(t *testing.T) {
	svc := newDashboardServiceForTest(t, &mockTemplateLoader{}, &mockLeaveRepo{}, &mockDutyLister{}, &mockMessageRepo{})

	_, err := svc.FacultyDashboard(context.Background(), "")
	require.Error(t, err)
}
