package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

type mockUserRepo struct {
	existing *models.User
	created  []*models.User
	listed   []models.User
	total    int
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	return m.listed, m.total, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.existing == nil || m.existing.Email != email {
		return nil, sql.ErrNoRows
	}
	user := *m.existing
	return &user, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.created = append(m.created, user)
	return nil
}

func TestUserServiceCreateHashesPasswordAndLowersEmail(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    " Vikram@College.edu ",
		Password: "s3cret-pass",
		FullName: "Vikram Rao",
		Role:     "FACULTY",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, "vikram@college.edu", user.Email)
	assert.Equal(t, models.RoleFaculty, user.Role)
	assert.True(t, user.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
}

func TestUserServiceCreateRejectsDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{existing: &models.User{ID: "user-1", Email: "asha@college.edu"}}
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "Asha@college.edu",
		Password: "s3cret-pass",
		FullName: "Asha Nair",
		Role:     "FACULTY",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestUserServiceCreateValidatesPayload(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "asha@college.edu",
		Password: "short",
		FullName: "Asha Nair",
		Role:     "FACULTY",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUserServiceListBuildsPagination(t *testing.T) {
	repo := &mockUserRepo{
		listed: []models.User{{ID: "user-1"}, {ID: "user-2"}},
		total:  12,
	}
	svc := NewUserService(repo, nil, nil)

	users, pagination, err := svc.List(context.Background(), models.UserFilter{})
	require.NoError(t, err)

	assert.Len(t, users, 2)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 12, pagination.TotalCount)
}
