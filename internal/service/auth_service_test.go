package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadhub/faculty-timetable-api/internal/models"
	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

type mockAuthUserRepo struct {
	user            *models.User
	lastLoginCalls  int
	passwordUpdates int
	newHash         string
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.user == nil || m.user.Email != email {
		return nil, sql.ErrNoRows
	}
	user := *m.user
	return &user, nil
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, sql.ErrNoRows
	}
	user := *m.user
	return &user, nil
}

func (m *mockAuthUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginCalls++
	return nil
}

func (m *mockAuthUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	m.passwordUpdates++
	m.newHash = passwordHash
	return nil
}

func authTestUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Email:        "asha@college.edu",
		FullName:     "Asha Nair",
		Role:         models.RoleFaculty,
		PasswordHash: string(hash),
		Active:       true,
	}
}

func testAuthConfig() AuthConfig {
	return AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "faculty-timetable-api"}
}

func TestLoginIssuesToken(t *testing.T) {
	repo := &mockAuthUserRepo{user: authTestUser(t, "s3cret!pass")}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@college.edu",
		Password: "s3cret!pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "asha@college.edu", resp.User.Email)
	assert.Equal(t, 1, repo.lastLoginCalls)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleFaculty, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &mockAuthUserRepo{user: authTestUser(t, "s3cret!pass")}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@college.edu",
		Password: "wrong-pass1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "whatever1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	user := authTestUser(t, "s3cret!pass")
	user.Active = false
	svc := NewAuthService(&mockAuthUserRepo{user: user}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@college.edu",
		Password: "s3cret!pass",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestChangePasswordStoresNewHash(t *testing.T) {
	repo := &mockAuthUserRepo{user: authTestUser(t, "old-pass-123")}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{
		OldPassword: "old-pass-123",
		NewPassword: "new-pass-456",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.passwordUpdates)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.newHash), []byte("new-pass-456")))
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	repo := &mockAuthUserRepo{user: authTestUser(t, "old-pass-123")}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{
		OldPassword: "not-the-old1",
		NewPassword: "new-pass-456",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.passwordUpdates)
}

func TestValidateTokenRejectsForgedToken(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
