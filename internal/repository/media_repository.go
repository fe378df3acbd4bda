package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sincet/noticeboard-api/internal/models"
)

// MediaRepository provides persistence for display media.
type MediaRepository struct {
	db *sqlx.DB
}

// NewMediaRepository creates the repository.
func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

const mediaColumns = `id, department, content_type, file_path, title, display_order, display_duration, created_at, is_active`

// List returns media ordered for the display rotation. An empty contentType
// matches both images and videos.
func (r *MediaRepository) List(ctx context.Context, filter models.ContentFilter, contentType string) ([]models.MediaContent, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.Scoped {
		where = append(where, fmt.Sprintf("(department = $%d OR department IS NULL)", len(args)+1))
		args = append(args, filter.Department)
	}
	if contentType != "" {
		where = append(where, fmt.Sprintf("content_type = $%d", len(args)+1))
		args = append(args, contentType)
	}
	query := fmt.Sprintf("SELECT %s FROM media_contents WHERE %s ORDER BY display_order ASC, created_at ASC", mediaColumns, strings.Join(where, " AND "))

	var media []models.MediaContent
	if err := r.db.SelectContext(ctx, &media, query, args...); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return media, nil
}

// FindByID fetches a media record regardless of active state.
func (r *MediaRepository) FindByID(ctx context.Context, id string) (*models.MediaContent, error) {
	query := fmt.Sprintf("SELECT %s FROM media_contents WHERE id = $1", mediaColumns)
	var media models.MediaContent
	if err := r.db.GetContext(ctx, &media, query, id); err != nil {
		return nil, err
	}
	return &media, nil
}

// Create inserts a new media record.
func (r *MediaRepository) Create(ctx context.Context, media *models.MediaContent) error {
	if media.ID == "" {
		media.ID = uuid.NewString()
	}
	if media.CreatedAt.IsZero() {
		media.CreatedAt = time.Now().UTC()
	}
	media.IsActive = true
	const query = `INSERT INTO media_contents (id, department, content_type, file_path, title, display_order, display_duration, created_at, is_active)
VALUES (:id, :department, :content_type, :file_path, :title, :display_order, :display_duration, :created_at, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, media); err != nil {
		return fmt.Errorf("create media: %w", err)
	}
	return nil
}

// SoftDelete flips is_active.
func (r *MediaRepository) SoftDelete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE media_contents SET is_active = FALSE WHERE id = $1", id); err != nil {
		return fmt.Errorf("soft delete media: %w", err)
	}
	return nil
}
