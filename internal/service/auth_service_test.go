package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/pkg/config"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

type userRepoStub struct {
	users   map[string]*models.User
	created []*models.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]*models.User)}
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	user.ID = "user-" + user.Email
	user.IsActive = true
	s.users[strings.ToLower(user.Email)] = user
	s.created = append(s.created, user)
	return nil
}

func testCollege() config.CollegeConfig {
	return config.CollegeConfig{
		Departments: []config.Department{
			{Code: "CSE", Name: "Computer Science & Engineering", HODEmail: "csehod@college.edu"},
			{Code: "ECE", Name: "Electronics & Communication Engineering", HODEmail: "ecehod@college.edu"},
		},
		Years: []string{"1st Year", "2nd Year", "3rd Year", "4th Year"},
	}
}

func newAuthServiceForTest(repo *userRepoStub) *AuthService {
	auth := config.AuthConfig{PrincipalEmail: "principal@college.edu", DefaultPassword: "college123"}
	return NewAuthService(repo, nil, zap.NewNop(), auth, testCollege())
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(newUserRepoStub())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypeStaff,
		Email:     "csehod@college.edu",
		Password:  "nope",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrInvalidPassword.Code, appErr.Code)
}

func TestAuthServiceLoginStaffUnknownEmail(t *testing.T) {
	repo := newUserRepoStub()
	svc := newAuthServiceForTest(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypeStaff,
		Email:     "stranger@college.edu",
		Password:  "college123",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrUnknownHOD.Code, appErr.Code)
	require.Empty(t, repo.created)
}

func TestAuthServiceLoginStaffCreatesHODLazily(t *testing.T) {
	repo := newUserRepoStub()
	svc := newAuthServiceForTest(repo)

	auth, err := svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypeStaff,
		Email:     "CSEHOD@college.edu",
		Password:  "college123",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleHOD, auth.Role)
	require.Equal(t, "CSE", auth.Dept())
	require.Equal(t, "HOD - Computer Science & Engineering", auth.Name)
	require.Len(t, repo.created, 1)

	// Second login reuses the stored user.
	again, err := svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypeStaff,
		Email:     "csehod@college.edu",
		Password:  "college123",
	})
	require.NoError(t, err)
	require.Equal(t, auth.UserID, again.UserID)
	require.Len(t, repo.created, 1)
}

func TestAuthServiceLoginPrincipal(t *testing.T) {
	repo := newUserRepoStub()
	svc := newAuthServiceForTest(repo)

	// The configured address matches case-insensitively.
	auth, err := svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypePrincipal,
		Email:     " Principal@College.edu ",
		Password:  "college123",
	})
	require.NoError(t, err)
	require.Equal(t, models.RolePrincipal, auth.Role)
	require.True(t, auth.Principal())
	require.Empty(t, auth.Dept())
}

func TestAuthServiceLoginPrincipalWrongEmail(t *testing.T) {
	repo := newUserRepoStub()
	svc := newAuthServiceForTest(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypePrincipal,
		Email:     "attacker@evil.example",
		Password:  "college123",
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	require.Empty(t, repo.created)

	// The password alone never grants the principal role.
	_, err = svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypePrincipal,
		Password:  "college123",
	})
	require.Error(t, err)
	require.Empty(t, repo.created)
}

func TestAuthServiceLoginGeneralVisitor(t *testing.T) {
	repo := newUserRepoStub()
	svc := newAuthServiceForTest(repo)

	auth, err := svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypeGeneral,
		Password:  "college123",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleGeneral, auth.Role)
	require.Equal(t, "Visitor", auth.Name)
	require.False(t, auth.Role.Admin())
}

func TestAuthServiceLoginGeneralUsesSubmittedEmail(t *testing.T) {
	repo := newUserRepoStub()
	svc := newAuthServiceForTest(repo)

	auth, err := svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypeGeneral,
		Email:     "Visitor@Example.com",
		Password:  "college123",
	})
	require.NoError(t, err)
	require.Equal(t, "visitor@example.com", auth.Email)
	require.Len(t, repo.created, 1)

	// A second visitor gets their own row.
	_, err = svc.Login(context.Background(), models.LoginRequest{
		LoginType: models.LoginTypeGeneral,
		Email:     "other@example.com",
		Password:  "college123",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 2)
}
