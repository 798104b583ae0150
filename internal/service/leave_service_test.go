package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

type mockLeaveRepo struct {
	requests    []models.LeaveRequest
	createCalls int
	statusCalls int
	lastStatus  models.LeaveStatus
}

func (m *mockLeaveRepo) List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveRequest, int, error) {
	return m.requests, len(m.requests), nil
}

func (m *mockLeaveRepo) FindByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	for i := range m.requests {
		if m.requests[i].ID == id {
			req := m.requests[i]
			return &req, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockLeaveRepo) Create(ctx context.Context, req *models.LeaveRequest) error {
	m.createCalls++
	req.ID = "leave-1"
	req.Status = models.LeavePending
	m.requests = append(m.requests, *req)
	return nil
}

func (m *mockLeaveRepo) UpdateStatus(ctx context.Context, id string, status models.LeaveStatus, decidedBy string, decidedAt time.Time) error {
	m.statusCalls++
	m.lastStatus = status
	return nil
}

func TestLeaveCreateFilesPendingRequest(t *testing.T) {
	repo := &mockLeaveRepo{}
	svc := NewLeaveService(repo, nil, zap.NewNop())

	leave, err := svc.Create(context.Background(), "Asha@College.EDU", CreateLeaveRequest{
		FromDate: "2026-03-02",
		ToDate:   "2026-03-04",
		Reason:   "conference travel",
	})
	require.NoError(t, err)

	assert.Equal(t, "asha@college.edu", leave.FacultyEmail)
	assert.Equal(t, models.LeavePending, leave.Status)
	assert.Equal(t, 1, repo.createCalls)
}

func TestLeaveCreateRejectsInvertedRange(t *testing.T) {
	svc := NewLeaveService(&mockLeaveRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), "asha@college.edu", CreateLeaveRequest{
		FromDate: "2026-03-04",
		ToDate:   "2026-03-02",
		Reason:   "typo",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLeaveCreateRejectsBadDate(t *testing.T) {
	svc := NewLeaveService(&mockLeaveRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), "asha@college.edu", CreateLeaveRequest{
		FromDate: "02-03-2026",
		ToDate:   "2026-03-04",
		Reason:   "wrong format",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLeaveApprovePendingRequest(t *testing.T) {
	repo := &mockLeaveRepo{requests: []models.LeaveRequest{{
		ID:     "leave-1",
		Status: models.LeavePending,
	}}}
	svc := NewLeaveService(repo, nil, zap.NewNop())
	decidedAt := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return decidedAt }

	leave, err := svc.Approve(context.Background(), "leave-1", "admin@college.edu")
	require.NoError(t, err)

	assert.Equal(t, models.LeaveApproved, leave.Status)
	require.NotNil(t, leave.DecidedBy)
	assert.Equal(t, "admin@college.edu", *leave.DecidedBy)
	require.NotNil(t, leave.DecidedAt)
	assert.True(t, leave.DecidedAt.Equal(decidedAt))
	assert.Equal(t, models.LeaveApproved, repo.lastStatus)
}

func TestLeaveDecideTwiceConflicts(t *testing.T) {
	repo := &mockLeaveRepo{requests: []models.LeaveRequest{{
		ID:     "leave-1",
		Status: models.LeaveApproved,
	}}}
	svc := NewLeaveService(repo, nil, zap.NewNop())

	_, err := svc.Reject(context.Background(), "leave-1", "admin@college.edu")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.statusCalls)
}

func TestLeaveDecideMissingReturnsNotFound(t *testing.T) {
	svc := NewLeaveService(&mockLeaveRepo{}, nil, zap.NewNop())

	_, err := svc.Approve(context.Background(), "missing", "admin@college.edu")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
