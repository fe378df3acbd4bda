package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/realtime"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

type settingsRepoStub struct {
	settings map[string]*models.DepartmentSettings
	seeded   []string
	updated  *models.DepartmentSettings
}

func newSettingsRepoStub() *settingsRepoStub {
	return &settingsRepoStub{settings: make(map[string]*models.DepartmentSettings)}
}

func (s *settingsRepoStub) FindByDepartment(ctx context.Context, department string) (*models.DepartmentSettings, error) {
	if settings, ok := s.settings[department]; ok {
		return settings, nil
	}
	return nil, sql.ErrNoRows
}

func (s *settingsRepoStub) EnsureDefaults(ctx context.Context, departments []string) error {
	s.seeded = departments
	return nil
}

func (s *settingsRepoStub) Update(ctx context.Context, settings *models.DepartmentSettings) error {
	s.updated = settings
	s.settings[settings.Department] = settings
	return nil
}

func TestSettingsServiceGetForbiddenForPrincipal(t *testing.T) {
	svc := NewSettingsService(newSettingsRepoStub(), nil, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), principalContext())
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestSettingsServiceUpdatePublishes(t *testing.T) {
	repo := newSettingsRepoStub()
	pub := &publisherStub{}
	svc := NewSettingsService(repo, pub, nil, zap.NewNop())

	settings, err := svc.Update(context.Background(), hodContext(), models.UpdateSettingsRequest{
		TextDuration:     6,
		PhotoDuration:    8,
		VideoDuration:    25,
		TotalWorkingDays: 180,
	})
	require.NoError(t, err)
	require.Equal(t, "CSE", settings.Department)
	require.Equal(t, 6, settings.TextDuration)
	require.NotNil(t, repo.updated)

	require.Len(t, pub.events, 1)
	require.Equal(t, realtime.EventSettingsUpdate, pub.events[0].Name)
	require.Equal(t, "CSE", pub.events[0].Payload["department"])
}

func TestSettingsServiceUpdateValidatesDurations(t *testing.T) {
	svc := NewSettingsService(newSettingsRepoStub(), nil, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), hodContext(), models.UpdateSettingsRequest{
		TextDuration:  0,
		PhotoDuration: 8,
		VideoDuration: 25,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingsServiceEnsureDefaults(t *testing.T) {
	repo := newSettingsRepoStub()
	svc := NewSettingsService(repo, nil, nil, zap.NewNop())

	require.NoError(t, svc.EnsureDefaults(context.Background(), []string{"CSE", "ECE"}))
	require.Equal(t, []string{"CSE", "ECE"}, repo.seeded)
}
