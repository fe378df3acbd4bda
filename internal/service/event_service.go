package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/realtime"
	"github.com/sincet/noticeboard-api/internal/repository"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/storage"
)

type eventRepository interface {
	List(ctx context.Context, filter models.ContentFilter, order repository.EventOrder) ([]models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	SoftDelete(ctx context.Context, id string) error
}

// EventService owns the event lifecycle.
type EventService struct {
	events    eventRepository
	uploads   uploadStore
	publisher realtime.Publisher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs an EventService.
func NewEventService(events eventRepository, uploads uploadStore, publisher realtime.Publisher, validate *validator.Validate, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &EventService{events: events, uploads: uploads, publisher: publisher, validator: validate, logger: logger}
}

// List returns events visible to the actor, most recent event date first.
func (s *EventService) List(ctx context.Context, actor models.AuthContext, activeOnly bool) ([]models.Event, error) {
	filter := models.ContentFilter{ActiveOnly: activeOnly}
	if !actor.Principal() {
		filter.Scoped = true
		filter.Department = actor.Dept()
	}
	events, err := s.events.List(ctx, filter, repository.EventOrderDateDesc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// PublicList returns active events for one department, soonest first, or
// every department's events for "all".
func (s *EventService) PublicList(ctx context.Context, department string) ([]models.Event, error) {
	filter := models.ContentFilter{ActiveOnly: true}
	if department != DepartmentAll && department != "" {
		filter.Scoped = true
		filter.Department = department
	}
	events, err := s.events.List(ctx, filter, repository.EventOrderDateAsc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// Create schedules an event for the actor's department. Principal events
// are visible to all departments.
func (s *EventService) Create(ctx context.Context, actor models.AuthContext, req models.CreateEventRequest, image *Upload) (*models.Event, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can post events")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event_date must be YYYY-MM-DD")
	}

	rel, err := saveUpload(s.uploads, storage.FolderEvents, image)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:           req.Title,
		Description:     req.Description,
		EventDate:       eventDate,
		EventTime:       req.EventTime,
		Venue:           req.Venue,
		CreatedBy:       &actor.UserID,
		DisplayDuration: req.DisplayDuration,
	}
	if !actor.Principal() {
		dept := actor.Dept()
		event.Department = &dept
	}
	if rel != "" {
		event.Image = &rel
	}

	if err := s.events.Create(ctx, event); err != nil {
		if rel != "" {
			if rmErr := s.uploads.Remove(rel); rmErr != nil {
				s.logger.Warn("failed to remove orphaned event image", zap.Error(rmErr))
			}
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}

	s.publisher.Publish(realtime.ContentUpdate("event", "created", event.ID))
	return event, nil
}

// Get fetches one event for the public detail page.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}

// Find fetches one event for staff review. HODs may only open shared
// events or their own department's.
func (s *EventService) Find(ctx context.Context, actor models.AuthContext, id string) (*models.Event, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can open this event")
	}
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if !actor.Principal() && event.Department != nil && !ownsContent(actor, event.Department, event.CreatedBy) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "event belongs to another department")
	}
	return event, nil
}

// Delete soft-deletes an event the actor is allowed to manage.
func (s *EventService) Delete(ctx context.Context, actor models.AuthContext, id string) error {
	if !actor.Role.Admin() {
		return appErrors.Clone(appErrors.ErrForbidden, "only staff can delete events")
	}
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if !actor.Principal() && !ownsContent(actor, event.Department, event.CreatedBy) {
		return appErrors.Clone(appErrors.ErrForbidden, "event belongs to another department")
	}
	if err := s.events.SoftDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.publisher.Publish(realtime.ContentUpdate("event", "deleted", id))
	return nil
}
