package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sincet/noticeboard-api/internal/models"
)

// SettingsRepository provides persistence for per-department display settings.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `id, department, text_duration, photo_duration, video_duration, total_working_days`

// FindByDepartment returns the settings row for one department.
func (r *SettingsRepository) FindByDepartment(ctx context.Context, department string) (*models.DepartmentSettings, error) {
	query := fmt.Sprintf("SELECT %s FROM department_settings WHERE department = $1", settingsColumns)
	var settings models.DepartmentSettings
	if err := r.db.GetContext(ctx, &settings, query, department); err != nil {
		return nil, err
	}
	return &settings, nil
}

// EnsureDefaults creates a settings row with default durations for every
// configured department that lacks one. Runs at startup.
func (r *SettingsRepository) EnsureDefaults(ctx context.Context, departments []string) error {
	const query = `INSERT INTO department_settings (id, department, text_duration, photo_duration, video_duration, total_working_days)
VALUES ($1, $2, $3, $4, $5, 0)
ON CONFLICT (department) DO NOTHING`
	for _, dept := range departments {
		_, err := r.db.ExecContext(ctx, query, uuid.NewString(), dept,
			models.DefaultTextDuration, models.DefaultPhotoDuration, models.DefaultVideoDuration)
		if err != nil {
			return fmt.Errorf("ensure settings for %s: %w", dept, err)
		}
	}
	return nil
}

// Update overwrites one department's durations and working-day count.
func (r *SettingsRepository) Update(ctx context.Context, settings *models.DepartmentSettings) error {
	const query = `UPDATE department_settings
SET text_duration = :text_duration, photo_duration = :photo_duration,
video_duration = :video_duration, total_working_days = :total_working_days
WHERE department = :department`
	res, err := r.db.NamedExecContext(ctx, query, settings)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("update settings: no row for department %s", settings.Department)
	}
	return nil
}
