package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

type resultRepoStub struct {
	results    map[string]*models.Result
	lastFilter models.ContentFilter
	deleted    []string
}

func newResultRepoStub() *resultRepoStub {
	return &resultRepoStub{results: make(map[string]*models.Result)}
}

func (s *resultRepoStub) List(ctx context.Context, filter models.ContentFilter) ([]models.Result, error) {
	s.lastFilter = filter
	out := make([]models.Result, 0, len(s.results))
	for _, result := range s.results {
		out = append(out, *result)
	}
	return out, nil
}

func (s *resultRepoStub) FindByID(ctx context.Context, id string) (*models.Result, error) {
	result, ok := s.results[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return result, nil
}

func (s *resultRepoStub) Create(ctx context.Context, result *models.Result) error {
	result.ID = fmt.Sprintf("r-%d", len(s.results)+1)
	s.results[result.ID] = result
	return nil
}

func (s *resultRepoStub) SoftDelete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestResultServiceCreateHODIgnoresDepartmentOverride(t *testing.T) {
	repo := newResultRepoStub()
	svc := NewResultService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop(), testCollege())

	result, err := svc.Create(context.Background(), hodContext(), "ECE", models.CreateResultRequest{
		Title: "Semester results",
		Year:  "2nd Year",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "CSE", result.Department)
}

func TestResultServiceCreatePrincipalPicksDepartment(t *testing.T) {
	repo := newResultRepoStub()
	svc := NewResultService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop(), testCollege())

	result, err := svc.Create(context.Background(), principalContext(), "ECE", models.CreateResultRequest{
		Title: "Semester results",
		Year:  "2nd Year",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "ECE", result.Department)
}

func TestResultServiceCreateRejectsUnknownDepartment(t *testing.T) {
	svc := NewResultService(newResultRepoStub(), &uploadStoreStub{}, nil, nil, zap.NewNop(), testCollege())

	_, err := svc.Create(context.Background(), principalContext(), "MECH", models.CreateResultRequest{
		Title: "Semester results",
		Year:  "2nd Year",
	}, nil)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResultServiceCreateRejectsUnknownYear(t *testing.T) {
	svc := NewResultService(newResultRepoStub(), &uploadStoreStub{}, nil, nil, zap.NewNop(), testCollege())

	_, err := svc.Create(context.Background(), hodContext(), "", models.CreateResultRequest{
		Title: "Semester results",
		Year:  "9th Year",
	}, nil)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestResultServicePublicListAllUnscoped(t *testing.T) {
	repo := newResultRepoStub()
	svc := NewResultService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop(), testCollege())

	_, err := svc.PublicList(context.Background(), DepartmentAll)
	require.NoError(t, err)
	require.False(t, repo.lastFilter.Scoped)
	require.Empty(t, repo.lastFilter.Department)

	_, err = svc.PublicList(context.Background(), "CSE")
	require.NoError(t, err)
	require.True(t, repo.lastFilter.Scoped)
	require.Equal(t, "CSE", repo.lastFilter.Department)
}

func TestResultServiceFindCrossDepartmentForbidden(t *testing.T) {
	repo := newResultRepoStub()
	repo.results["r-1"] = &models.Result{ID: "r-1", Department: "ECE"}
	svc := NewResultService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop(), testCollege())

	_, err := svc.Find(context.Background(), hodContext(), "r-1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	result, err := svc.Find(context.Background(), principalContext(), "r-1")
	require.NoError(t, err)
	require.Equal(t, "r-1", result.ID)
}

func TestResultServiceDeleteCrossDepartmentForbidden(t *testing.T) {
	repo := newResultRepoStub()
	repo.results["r-1"] = &models.Result{ID: "r-1", Department: "ECE"}
	svc := NewResultService(repo, &uploadStoreStub{}, nil, nil, zap.NewNop(), testCollege())

	err := svc.Delete(context.Background(), hodContext(), "r-1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	require.Empty(t, repo.deleted)
}
