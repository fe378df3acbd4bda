package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/repository"
	"github.com/sincet/noticeboard-api/internal/service"
	"github.com/sincet/noticeboard-api/pkg/config"
)

func testCollegeConfig() config.CollegeConfig {
	return config.CollegeConfig{
		Departments: []config.Department{
			{Code: "CSE", Name: "Computer Science & Engineering", HODEmail: "csehod@college.edu"},
			{Code: "ECE", Name: "Electronics & Communication Engineering", HODEmail: "ecehod@college.edu"},
		},
		Years: []string{"1st Year", "2nd Year"},
	}
}

type viewerNoticeRepoStub struct {
	notices    []models.Notice
	lastFilter models.ContentFilter
}

func (s *viewerNoticeRepoStub) List(ctx context.Context, filter models.ContentFilter) ([]models.Notice, error) {
	s.lastFilter = filter
	return s.notices, nil
}

func (s *viewerNoticeRepoStub) FindByID(ctx context.Context, id string) (*models.Notice, error) {
	return nil, sql.ErrNoRows
}

func (s *viewerNoticeRepoStub) Create(ctx context.Context, notice *models.Notice) error { return nil }
func (s *viewerNoticeRepoStub) SoftDelete(ctx context.Context, id string) error        { return nil }
func (s *viewerNoticeRepoStub) IncrementViews(ctx context.Context, id string) error    { return nil }

type viewerEventRepoStub struct {
	events []models.Event
}

func (s *viewerEventRepoStub) List(ctx context.Context, filter models.ContentFilter, order repository.EventOrder) ([]models.Event, error) {
	return s.events, nil
}

func (s *viewerEventRepoStub) FindByID(ctx context.Context, id string) (*models.Event, error) {
	return nil, sql.ErrNoRows
}

func (s *viewerEventRepoStub) Create(ctx context.Context, event *models.Event) error { return nil }
func (s *viewerEventRepoStub) SoftDelete(ctx context.Context, id string) error       { return nil }

type viewerResultRepoStub struct {
	results []models.Result
}

func (s *viewerResultRepoStub) List(ctx context.Context, filter models.ContentFilter) ([]models.Result, error) {
	return s.results, nil
}

func (s *viewerResultRepoStub) FindByID(ctx context.Context, id string) (*models.Result, error) {
	return nil, sql.ErrNoRows
}

func (s *viewerResultRepoStub) Create(ctx context.Context, result *models.Result) error { return nil }
func (s *viewerResultRepoStub) SoftDelete(ctx context.Context, id string) error         { return nil }

func TestDisplayHandlerViewerAggregatesAllDepartments(t *testing.T) {
	gin.SetMode(gin.TestMode)

	noticeRepo := &viewerNoticeRepoStub{notices: []models.Notice{
		{ID: "n-1", Title: "Shared", ForAllDepartments: true},
		{ID: "n-2", Title: "CSE only"},
	}}
	eventRepo := &viewerEventRepoStub{events: []models.Event{{ID: "e-1", Title: "Sports day"}}}
	resultRepo := &viewerResultRepoStub{results: []models.Result{{ID: "r-1", Title: "Sem 4", Department: "ECE"}}}

	noticeSvc := service.NewNoticeService(noticeRepo, nil, nil, nil, zap.NewNop())
	eventSvc := service.NewEventService(eventRepo, nil, nil, nil, zap.NewNop())
	resultSvc := service.NewResultService(resultRepo, nil, nil, nil, zap.NewNop(), testCollegeConfig())
	h := NewDisplayHandler(nil, noticeSvc, eventSvc, resultSvc, nil, testCollegeConfig())

	r := gin.New()
	r.GET("/viewer", h.Viewer)

	req := httptest.NewRequest(http.MethodGet, "/viewer", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Department-scoped content must survive the college-wide aggregate.
	require.False(t, noticeRepo.lastFilter.Scoped)

	var envelope struct {
		Data struct {
			Notices []models.Notice `json:"notices"`
			Events  []models.Event  `json:"events"`
			Results []models.Result `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Notices, 2)
	require.Len(t, envelope.Data.Events, 1)
	require.Len(t, envelope.Data.Results, 1)
}
