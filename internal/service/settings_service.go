package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/realtime"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

type settingsRepository interface {
	FindByDepartment(ctx context.Context, department string) (*models.DepartmentSettings, error)
	EnsureDefaults(ctx context.Context, departments []string) error
	Update(ctx context.Context, settings *models.DepartmentSettings) error
}

// SettingsService lets an HOD tune their department's display durations.
type SettingsService struct {
	settings  settingsRepository
	publisher realtime.Publisher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(settings settingsRepository, publisher realtime.Publisher, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &SettingsService{settings: settings, publisher: publisher, validator: validate, logger: logger}
}

// EnsureDefaults seeds one settings row per configured department. Called
// once at startup.
func (s *SettingsService) EnsureDefaults(ctx context.Context, departments []string) error {
	if err := s.settings.EnsureDefaults(ctx, departments); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed display settings")
	}
	return nil
}

// Get returns the actor's department settings.
func (s *SettingsService) Get(ctx context.Context, actor models.AuthContext) (*models.DepartmentSettings, error) {
	if actor.Role != models.RoleHOD {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only a department HOD has display settings")
	}
	settings, err := s.settings.FindByDepartment(ctx, actor.Dept())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "settings not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return settings, nil
}

// Update overwrites the actor's department settings and tells connected
// displays to pick them up.
func (s *SettingsService) Update(ctx context.Context, actor models.AuthContext, req models.UpdateSettingsRequest) (*models.DepartmentSettings, error) {
	if actor.Role != models.RoleHOD {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only a department HOD can change display settings")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}

	settings := &models.DepartmentSettings{
		Department:       actor.Dept(),
		TextDuration:     req.TextDuration,
		PhotoDuration:    req.PhotoDuration,
		VideoDuration:    req.VideoDuration,
		TotalWorkingDays: req.TotalWorkingDays,
	}
	if err := s.settings.Update(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update settings")
	}

	s.publisher.Publish(realtime.SettingsUpdate(actor.Dept()))
	s.logger.Info("display settings updated", zap.String("department", actor.Dept()))
	return settings, nil
}
