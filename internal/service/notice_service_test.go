package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/realtime"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/storage"
)

type noticeRepoStub struct {
	notices    map[string]*models.Notice
	lastFilter models.ContentFilter
	createErr  error
	deleted    []string
	views      []string
}

func newNoticeRepoStub() *noticeRepoStub {
	return &noticeRepoStub{notices: make(map[string]*models.Notice)}
}

func (s *noticeRepoStub) List(ctx context.Context, filter models.ContentFilter) ([]models.Notice, error) {
	s.lastFilter = filter
	out := make([]models.Notice, 0, len(s.notices))
	for _, n := range s.notices {
		out = append(out, *n)
	}
	return out, nil
}

func (s *noticeRepoStub) FindByID(ctx context.Context, id string) (*models.Notice, error) {
	n, ok := s.notices[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return n, nil
}

func (s *noticeRepoStub) Create(ctx context.Context, notice *models.Notice) error {
	if s.createErr != nil {
		return s.createErr
	}
	notice.ID = fmt.Sprintf("n-%d", len(s.notices)+1)
	s.notices[notice.ID] = notice
	return nil
}

func (s *noticeRepoStub) SoftDelete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *noticeRepoStub) IncrementViews(ctx context.Context, id string) error {
	s.views = append(s.views, id)
	return nil
}

type uploadStoreStub struct {
	saved   []string
	removed []string
}

func (s *uploadStoreStub) Allowed(filename string) bool {
	switch storage.Extension(filename) {
	case "pdf", "jpg", "png", "mp4":
		return true
	}
	return false
}

func (s *uploadStoreStub) Save(folder, originalName string, r io.Reader) (string, error) {
	rel := folder + "/" + originalName
	s.saved = append(s.saved, rel)
	if r != nil {
		io.Copy(io.Discard, r) //nolint:errcheck
	}
	return rel, nil
}

func (s *uploadStoreStub) Remove(rel string) error {
	s.removed = append(s.removed, rel)
	return nil
}

type publisherStub struct {
	events []realtime.Event
}

func (s *publisherStub) Publish(evt realtime.Event) {
	s.events = append(s.events, evt)
}

func principalContext() models.AuthContext {
	return models.AuthContext{UserID: "principal-1", Role: models.RolePrincipal, Name: "Principal"}
}

func TestNoticeServiceListScoping(t *testing.T) {
	repo := newNoticeRepoStub()
	svc := NewNoticeService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop())

	_, err := svc.List(context.Background(), hodContext(), true)
	require.NoError(t, err)
	require.True(t, repo.lastFilter.Scoped)
	require.Equal(t, "CSE", repo.lastFilter.Department)

	_, err = svc.List(context.Background(), principalContext(), true)
	require.NoError(t, err)
	require.False(t, repo.lastFilter.Scoped)
	require.Empty(t, repo.lastFilter.Department)
}

func TestNoticeServicePublicListAllUnscoped(t *testing.T) {
	repo := newNoticeRepoStub()
	svc := NewNoticeService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop())

	_, err := svc.PublicList(context.Background(), DepartmentAll)
	require.NoError(t, err)
	require.False(t, repo.lastFilter.Scoped)
	require.Empty(t, repo.lastFilter.Department)
	require.True(t, repo.lastFilter.ActiveOnly)

	_, err = svc.PublicList(context.Background(), "CSE")
	require.NoError(t, err)
	require.True(t, repo.lastFilter.Scoped)
	require.Equal(t, "CSE", repo.lastFilter.Department)
}

func TestNoticeServiceFindScopedToDepartment(t *testing.T) {
	repo := newNoticeRepoStub()
	repo.notices["n-1"] = &models.Notice{ID: "n-1", Department: strPtr("ECE"), CreatedBy: strPtr("hod-2")}
	repo.notices["n-2"] = &models.Notice{ID: "n-2", ForAllDepartments: true}
	svc := NewNoticeService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop())

	_, err := svc.Find(context.Background(), hodContext(), "n-1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	// Shared notices stay readable, and opening one counts no view.
	notice, err := svc.Find(context.Background(), hodContext(), "n-2")
	require.NoError(t, err)
	require.Equal(t, "n-2", notice.ID)
	require.Empty(t, repo.views)

	_, err = svc.Find(context.Background(), principalContext(), "n-1")
	require.NoError(t, err)
}

func TestNoticeServiceCreateByHOD(t *testing.T) {
	repo := newNoticeRepoStub()
	pub := &publisherStub{}
	svc := NewNoticeService(repo, &uploadStoreStub{}, pub, nil, zap.NewNop())

	notice, err := svc.Create(context.Background(), hodContext(), models.CreateNoticeRequest{
		Title:   "Lab closed",
		Content: "Network lab closed on Friday",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, notice.Department)
	require.Equal(t, "CSE", *notice.Department)
	require.False(t, notice.ForAllDepartments)
	require.Equal(t, models.PriorityNormal, notice.Priority)

	require.Len(t, pub.events, 1)
	require.Equal(t, realtime.EventContentUpdate, pub.events[0].Name)
	require.Equal(t, "notice", pub.events[0].Payload["type"])
	require.Equal(t, "created", pub.events[0].Payload["action"])
}

func TestNoticeServiceCreateByPrincipalSharesEverywhere(t *testing.T) {
	repo := newNoticeRepoStub()
	svc := NewNoticeService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop())

	notice, err := svc.Create(context.Background(), principalContext(), models.CreateNoticeRequest{
		Title:   "Holiday",
		Content: "College closed tomorrow",
	}, nil)
	require.NoError(t, err)
	require.True(t, notice.ForAllDepartments)
	require.Nil(t, notice.Department)
}

func TestNoticeServiceCreateWithAttachment(t *testing.T) {
	repo := newNoticeRepoStub()
	store := &uploadStoreStub{}
	svc := NewNoticeService(repo, store, nil, nil, zap.NewNop())

	notice, err := svc.Create(context.Background(), hodContext(), models.CreateNoticeRequest{
		Title:   "Timetable",
		Content: "Revised timetable attached",
	}, &Upload{Filename: "timetable.pdf", Reader: bytes.NewReader([]byte("%PDF"))})
	require.NoError(t, err)
	require.NotNil(t, notice.Attachment)
	require.Equal(t, "notices/timetable.pdf", *notice.Attachment)
	require.NotNil(t, notice.AttachmentType)
	require.Equal(t, "pdf", *notice.AttachmentType)
	require.Len(t, store.saved, 1)
}

func TestNoticeServiceCreateRejectsDisallowedExtension(t *testing.T) {
	repo := newNoticeRepoStub()
	store := &uploadStoreStub{}
	svc := NewNoticeService(repo, store, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), hodContext(), models.CreateNoticeRequest{
		Title:   "Setup",
		Content: "Installer attached",
	}, &Upload{Filename: "setup.exe", Reader: bytes.NewReader([]byte{0x4d})})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Contains(t, appErr.Message, "not allowed")
	require.Empty(t, store.saved)
	require.Empty(t, repo.notices)
}

func TestNoticeServiceCreateRemovesOrphanedAttachment(t *testing.T) {
	repo := newNoticeRepoStub()
	repo.createErr = errors.New("insert failed")
	store := &uploadStoreStub{}
	svc := NewNoticeService(repo, store, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), hodContext(), models.CreateNoticeRequest{
		Title:   "Timetable",
		Content: "Revised timetable attached",
	}, &Upload{Filename: "timetable.pdf", Reader: bytes.NewReader([]byte("%PDF"))})
	require.Error(t, err)
	require.Equal(t, []string{"notices/timetable.pdf"}, store.removed)
}

func TestNoticeServiceCreateRejectsBadExpiry(t *testing.T) {
	svc := NewNoticeService(newNoticeRepoStub(), &uploadStoreStub{}, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), hodContext(), models.CreateNoticeRequest{
		Title:     "Exam",
		Content:   "Exam notice",
		ExpiresAt: "31-12-2025",
	}, nil)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNoticeServiceGetIncrementsViews(t *testing.T) {
	repo := newNoticeRepoStub()
	repo.notices["n-1"] = &models.Notice{ID: "n-1", Title: "Holiday", Views: 3}
	svc := NewNoticeService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop())

	notice, err := svc.Get(context.Background(), "n-1")
	require.NoError(t, err)
	require.Equal(t, 4, notice.Views)
	require.Equal(t, []string{"n-1"}, repo.views)
}

func TestNoticeServiceDeleteCrossDepartmentForbidden(t *testing.T) {
	repo := newNoticeRepoStub()
	repo.notices["n-1"] = &models.Notice{ID: "n-1", Department: strPtr("ECE"), CreatedBy: strPtr("hod-2")}
	pub := &publisherStub{}
	svc := NewNoticeService(repo, &uploadStoreStub{}, pub, nil, zap.NewNop())

	err := svc.Delete(context.Background(), hodContext(), "n-1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	require.Empty(t, repo.deleted)
	require.Empty(t, pub.events)
}

func TestNoticeServiceDeleteByPrincipal(t *testing.T) {
	repo := newNoticeRepoStub()
	repo.notices["n-1"] = &models.Notice{ID: "n-1", Department: strPtr("ECE"), CreatedBy: strPtr("hod-2")}
	pub := &publisherStub{}
	svc := NewNoticeService(repo, &uploadStoreStub{}, pub, nil, zap.NewNop())

	err := svc.Delete(context.Background(), principalContext(), "n-1")
	require.NoError(t, err)
	require.Equal(t, []string{"n-1"}, repo.deleted)
	require.Len(t, pub.events, 1)
	require.Equal(t, "deleted", pub.events[0].Payload["action"])
}
