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

// NoticeRepository provides persistence for notices.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository creates the repository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

const noticeColumns = `id, title, content, department, priority, created_by, created_at, expires_at,
attachment, attachment_type, is_active, views, display_duration, for_all_departments`

// List returns notices matching the filter. A scoped filter applies the
// department-or-shared visibility rule; for_all_departments overrides the
// department column entirely.
func (r *NoticeRepository) List(ctx context.Context, filter models.ContentFilter) ([]models.Notice, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.Scoped {
		where = append(where, fmt.Sprintf("(department = $%d OR department IS NULL OR for_all_departments = TRUE)", len(args)+1))
		args = append(args, filter.Department)
	}
	order := "created_at DESC"
	if filter.OldestFirst {
		order = "created_at ASC"
	}
	limit := ""
	if filter.Limit > 0 {
		limit = fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	query := fmt.Sprintf("SELECT %s FROM notices WHERE %s ORDER BY %s%s", noticeColumns, strings.Join(where, " AND "), order, limit)

	var notices []models.Notice
	if err := r.db.SelectContext(ctx, &notices, query, args...); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// CountActive returns the number of active notices matching the filter.
func (r *NoticeRepository) CountActive(ctx context.Context, filter models.ContentFilter) (int, error) {
	where := []string{"is_active = TRUE"}
	args := []interface{}{}
	if filter.Scoped {
		where = append(where, fmt.Sprintf("(department = $%d OR department IS NULL OR for_all_departments = TRUE)", len(args)+1))
		args = append(args, filter.Department)
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM notices WHERE %s", strings.Join(where, " AND "))
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count notices: %w", err)
	}
	return total, nil
}

// FindByID fetches a notice regardless of active state.
func (r *NoticeRepository) FindByID(ctx context.Context, id string) (*models.Notice, error) {
	query := fmt.Sprintf("SELECT %s FROM notices WHERE id = $1", noticeColumns)
	var notice models.Notice
	if err := r.db.GetContext(ctx, &notice, query, id); err != nil {
		return nil, err
	}
	return &notice, nil
}

// Create inserts a new notice.
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now().UTC()
	}
	notice.IsActive = true
	const query = `INSERT INTO notices (id, title, content, department, priority, created_by, created_at, expires_at,
attachment, attachment_type, is_active, views, display_duration, for_all_departments)
VALUES (:id, :title, :content, :department, :priority, :created_by, :created_at, :expires_at,
:attachment, :attachment_type, :is_active, :views, :display_duration, :for_all_departments)`
	if _, err := r.db.NamedExecContext(ctx, query, notice); err != nil {
		return fmt.Errorf("create notice: %w", err)
	}
	return nil
}

// SoftDelete flips is_active; the row and any attachment file remain.
func (r *NoticeRepository) SoftDelete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE notices SET is_active = FALSE WHERE id = $1", id); err != nil {
		return fmt.Errorf("soft delete notice: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter; every visit counts.
func (r *NoticeRepository) IncrementViews(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE notices SET views = views + 1 WHERE id = $1", id); err != nil {
		return fmt.Errorf("increment notice views: %w", err)
	}
	return nil
}
