package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/repository"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

type eventRepoStub struct {
	events     map[string]*models.Event
	lastFilter models.ContentFilter
	lastOrder  repository.EventOrder
	deleted    []string
}

func newEventRepoStub() *eventRepoStub {
	return &eventRepoStub{events: make(map[string]*models.Event)}
}

func (s *eventRepoStub) List(ctx context.Context, filter models.ContentFilter, order repository.EventOrder) ([]models.Event, error) {
	s.lastFilter = filter
	s.lastOrder = order
	out := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		out = append(out, *event)
	}
	return out, nil
}

func (s *eventRepoStub) FindByID(ctx context.Context, id string) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return event, nil
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	event.ID = fmt.Sprintf("e-%d", len(s.events)+1)
	s.events[event.ID] = event
	return nil
}

func (s *eventRepoStub) SoftDelete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestEventServicePublicListAllUnscoped(t *testing.T) {
	repo := newEventRepoStub()
	svc := NewEventService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop())

	_, err := svc.PublicList(context.Background(), DepartmentAll)
	require.NoError(t, err)
	require.False(t, repo.lastFilter.Scoped)
	require.Empty(t, repo.lastFilter.Department)
	require.Equal(t, repository.EventOrderDateAsc, repo.lastOrder)

	_, err = svc.PublicList(context.Background(), "CSE")
	require.NoError(t, err)
	require.True(t, repo.lastFilter.Scoped)
	require.Equal(t, "CSE", repo.lastFilter.Department)
}

func TestEventServiceFindScopedToDepartment(t *testing.T) {
	repo := newEventRepoStub()
	repo.events["e-1"] = &models.Event{ID: "e-1", Department: strPtr("ECE"), CreatedBy: strPtr("hod-2")}
	repo.events["e-2"] = &models.Event{ID: "e-2"}
	svc := NewEventService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop())

	_, err := svc.Find(context.Background(), hodContext(), "e-1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	// College-wide events have no department and stay readable.
	event, err := svc.Find(context.Background(), hodContext(), "e-2")
	require.NoError(t, err)
	require.Equal(t, "e-2", event.ID)

	_, err = svc.Find(context.Background(), principalContext(), "e-1")
	require.NoError(t, err)
}
