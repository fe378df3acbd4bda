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

// ResultRepository provides persistence for published results.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates the repository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

const resultColumns = `id, title, department, year, semester, description, file_path, created_by, created_at, is_active`

// List returns results newest-first. Results are strictly department-owned:
// a scoped filter matches only the department itself.
func (r *ResultRepository) List(ctx context.Context, filter models.ContentFilter) ([]models.Result, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.Scoped {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	query := fmt.Sprintf("SELECT %s FROM results WHERE %s ORDER BY created_at DESC", resultColumns, strings.Join(where, " AND "))

	var results []models.Result
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// FindByID fetches a result regardless of active state.
func (r *ResultRepository) FindByID(ctx context.Context, id string) (*models.Result, error) {
	query := fmt.Sprintf("SELECT %s FROM results WHERE id = $1", resultColumns)
	var result models.Result
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create inserts a new result.
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}
	result.IsActive = true
	const query = `INSERT INTO results (id, title, department, year, semester, description, file_path, created_by, created_at, is_active)
VALUES (:id, :title, :department, :year, :semester, :description, :file_path, :created_by, :created_at, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}

// SoftDelete flips is_active.
func (r *ResultRepository) SoftDelete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE results SET is_active = FALSE WHERE id = $1", id); err != nil {
		return fmt.Errorf("soft delete result: %w", err)
	}
	return nil
}
