package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/repository"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

type dashboardNoticesStub struct {
	notices    []models.Notice
	total      int
	lastFilter models.ContentFilter
}

func (s *dashboardNoticesStub) List(ctx context.Context, filter models.ContentFilter) ([]models.Notice, error) {
	s.lastFilter = filter
	return s.notices, nil
}

func (s *dashboardNoticesStub) CountActive(ctx context.Context, filter models.ContentFilter) (int, error) {
	return s.total, nil
}

type dashboardEventsStub struct {
	events []models.Event
	total  int
}

func (s *dashboardEventsStub) List(ctx context.Context, filter models.ContentFilter, order repository.EventOrder) ([]models.Event, error) {
	return s.events, nil
}

func (s *dashboardEventsStub) CountActive(ctx context.Context, filter models.ContentFilter) (int, error) {
	return s.total, nil
}

type dashboardAttendanceStub struct {
	totals          map[string][2]int
	lastDepartments []string
}

func (s *dashboardAttendanceStub) TotalsByYear(ctx context.Context, department, year string) (int, int, error) {
	s.lastDepartments = append(s.lastDepartments, department)
	totals := s.totals[year]
	return totals[0], totals[1], nil
}

func TestDashboardServiceOverviewForHOD(t *testing.T) {
	notices := &dashboardNoticesStub{notices: []models.Notice{{ID: "n-1"}}, total: 12}
	events := &dashboardEventsStub{events: []models.Event{{ID: "e-1"}}, total: 5}
	attendance := &dashboardAttendanceStub{totals: map[string][2]int{
		"1st Year": {90, 10},
		"2nd Year": {70, 30},
	}}
	svc := NewDashboardService(notices, events, attendance, zap.NewNop(), testCollege())

	view, err := svc.Overview(context.Background(), hodContext(), "")
	require.NoError(t, err)
	require.Equal(t, 12, view.TotalNotices)
	require.Equal(t, 5, view.TotalEvents)
	require.Len(t, view.RecentNotices, 1)
	require.Len(t, view.RecentEvents, 1)

	require.True(t, notices.lastFilter.Scoped)
	require.Equal(t, "CSE", notices.lastFilter.Department)
	require.Equal(t, dashboardRecentLimit, notices.lastFilter.Limit)

	require.Len(t, view.Attendance, len(testCollege().Years))
	require.Equal(t, "1st Year", view.Attendance[0].Year)
	require.InDelta(t, 90.0, view.Attendance[0].Percentage, 0.001)
	require.InDelta(t, 70.0, view.Attendance[1].Percentage, 0.001)
	// Years without records chart as zero.
	require.Zero(t, view.Attendance[2].Percentage)

	for _, department := range attendance.lastDepartments {
		require.Equal(t, "CSE", department)
	}
}

func TestDashboardServiceOverviewPrincipalCollegeWide(t *testing.T) {
	notices := &dashboardNoticesStub{}
	attendance := &dashboardAttendanceStub{totals: map[string][2]int{}}
	svc := NewDashboardService(notices, &dashboardEventsStub{}, attendance, zap.NewNop(), testCollege())

	_, err := svc.Overview(context.Background(), principalContext(), "")
	require.NoError(t, err)
	require.False(t, notices.lastFilter.Scoped)
	for _, department := range attendance.lastDepartments {
		require.Empty(t, department)
	}
}

func TestDashboardServiceOverviewPrincipalDepartmentFilter(t *testing.T) {
	notices := &dashboardNoticesStub{}
	attendance := &dashboardAttendanceStub{totals: map[string][2]int{}}
	svc := NewDashboardService(notices, &dashboardEventsStub{}, attendance, zap.NewNop(), testCollege())

	_, err := svc.Overview(context.Background(), principalContext(), "ECE")
	require.NoError(t, err)
	require.True(t, notices.lastFilter.Scoped)
	require.Equal(t, "ECE", notices.lastFilter.Department)
	for _, department := range attendance.lastDepartments {
		require.Equal(t, "ECE", department)
	}

	_, err = svc.Overview(context.Background(), principalContext(), "MECH")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// HODs cannot peek into another department via the filter.
	hodView := &dashboardNoticesStub{}
	hodSvc := NewDashboardService(hodView, &dashboardEventsStub{}, attendance, zap.NewNop(), testCollege())
	_, err = hodSvc.Overview(context.Background(), hodContext(), "ECE")
	require.NoError(t, err)
	require.Equal(t, "CSE", hodView.lastFilter.Department)
}

func TestDashboardServiceOverviewForbiddenForGeneral(t *testing.T) {
	svc := NewDashboardService(&dashboardNoticesStub{}, &dashboardEventsStub{}, &dashboardAttendanceStub{}, zap.NewNop(), testCollege())

	_, err := svc.Overview(context.Background(), models.AuthContext{UserID: "vis-1", Role: models.RoleGeneral}, "")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
