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

// EventRepository provides persistence for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, event_date, event_time, venue, department,
created_by, created_at, image, display_duration, is_active`

// EventOrder selects the listing order for events.
type EventOrder string

const (
	// EventOrderDateDesc lists most recent event dates first (board view).
	EventOrderDateDesc EventOrder = "event_date DESC"
	// EventOrderDateAsc lists soonest events first (public viewer).
	EventOrderDateAsc EventOrder = "event_date ASC"
	// EventOrderCreatedAsc lists oldest postings first (TV rotation).
	EventOrderCreatedAsc EventOrder = "created_at ASC"
)

// List returns events matching the filter in the requested order.
func (r *EventRepository) List(ctx context.Context, filter models.ContentFilter, order EventOrder) ([]models.Event, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.Scoped {
		where = append(where, fmt.Sprintf("(department = $%d OR department IS NULL)", len(args)+1))
		args = append(args, filter.Department)
	}
	if order == "" {
		order = EventOrderDateDesc
	}
	limit := ""
	if filter.Limit > 0 {
		limit = fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY %s%s", eventColumns, strings.Join(where, " AND "), order, limit)

	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// CountActive returns the number of active events matching the filter.
func (r *EventRepository) CountActive(ctx context.Context, filter models.ContentFilter) (int, error) {
	where := []string{"is_active = TRUE"}
	args := []interface{}{}
	if filter.Scoped {
		where = append(where, fmt.Sprintf("(department = $%d OR department IS NULL)", len(args)+1))
		args = append(args, filter.Department)
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM events WHERE %s", strings.Join(where, " AND "))
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return total, nil
}

// FindByID fetches an event regardless of active state.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	event.IsActive = true
	const query = `INSERT INTO events (id, title, description, event_date, event_time, venue, department,
created_by, created_at, image, display_duration, is_active)
VALUES (:id, :title, :description, :event_date, :event_time, :venue, :department,
:created_by, :created_at, :image, :display_duration, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// SoftDelete flips is_active.
func (r *EventRepository) SoftDelete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE events SET is_active = FALSE WHERE id = $1", id); err != nil {
		return fmt.Errorf("soft delete event: %w", err)
	}
	return nil
}
