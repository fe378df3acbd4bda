package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/pkg/config"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthService implements the shared-password login. All three login types
// check the same configured password; the type decides the role and
// department. Users are created lazily on first successful login.
type AuthService struct {
	users     authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	auth      config.AuthConfig
	college   config.CollegeConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(users authUserRepository, validate *validator.Validate, logger *zap.Logger, auth config.AuthConfig, college config.CollegeConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{users: users, validator: validate, logger: logger, auth: auth, college: college}
}

// Login validates the shared password and resolves the identity for the
// requested login type. The returned AuthContext is what gets stored in the
// session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthContext, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if req.Password != s.auth.DefaultPassword {
		return nil, appErrors.Clone(appErrors.ErrInvalidPassword, "")
	}

	switch req.LoginType {
	case models.LoginTypePrincipal:
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != strings.ToLower(s.auth.PrincipalEmail) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "email does not match the principal account")
		}
		user, err := s.ensureUser(ctx, email, models.RolePrincipal, nil, "Principal")
		if err != nil {
			return nil, err
		}
		return contextFor(user), nil

	case models.LoginTypeStaff:
		email := strings.ToLower(strings.TrimSpace(req.Email))
		dept, ok := s.college.DepartmentByHODEmail(email)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrUnknownHOD, "")
		}
		name := fmt.Sprintf("HOD - %s", dept.Name)
		user, err := s.ensureUser(ctx, email, models.RoleHOD, &dept.Code, name)
		if err != nil {
			return nil, err
		}
		return contextFor(user), nil

	case models.LoginTypeGeneral:
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			email = "general@college.local"
		}
		user, err := s.ensureUser(ctx, email, models.RoleGeneral, nil, "Visitor")
		if err != nil {
			return nil, err
		}
		return contextFor(user), nil

	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown login type")
	}
}

// ensureUser returns the stored user for the email, creating it on first
// login.
func (s *AuthService) ensureUser(ctx context.Context, email string, role models.UserRole, department *string, name string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if !user.IsActive {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "account is disabled")
		}
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	user = &models.User{
		Email:      email,
		Password:   s.auth.DefaultPassword,
		Role:       role,
		Department: department,
		Name:       name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	s.logger.Info("created user on first login",
		zap.String("email", email),
		zap.String("role", string(role)))
	return user, nil
}

func contextFor(user *models.User) *models.AuthContext {
	return &models.AuthContext{
		UserID:     user.ID,
		Role:       user.Role,
		Department: user.Department,
		Name:       user.Name,
		Email:      user.Email,
	}
}
