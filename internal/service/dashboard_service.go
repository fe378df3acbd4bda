package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/repository"
	"github.com/sincet/noticeboard-api/pkg/config"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

const dashboardRecentLimit = 10

type dashboardNoticeRepository interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.Notice, error)
	CountActive(ctx context.Context, filter models.ContentFilter) (int, error)
}

type dashboardEventRepository interface {
	List(ctx context.Context, filter models.ContentFilter, order repository.EventOrder) ([]models.Event, error)
	CountActive(ctx context.Context, filter models.ContentFilter) (int, error)
}

type dashboardAttendanceRepository interface {
	TotalsByYear(ctx context.Context, department, year string) (present, absent int, err error)
}

// YearAttendance is one bar of the dashboard attendance chart.
type YearAttendance struct {
	Year       string  `json:"year"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Percentage float64 `json:"percentage"`
}

// DashboardView is the staff landing page payload.
type DashboardView struct {
	TotalNotices  int              `json:"total_notices"`
	TotalEvents   int              `json:"total_events"`
	RecentNotices []models.Notice  `json:"recent_notices"`
	RecentEvents  []models.Event   `json:"recent_events"`
	Attendance    []YearAttendance `json:"attendance"`
}

// DashboardService aggregates the staff dashboard: recent content, totals
// and per-year attendance. The principal sees college-wide numbers.
type DashboardService struct {
	notices    dashboardNoticeRepository
	events     dashboardEventRepository
	attendance dashboardAttendanceRepository
	logger     *zap.Logger
	college    config.CollegeConfig
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(notices dashboardNoticeRepository, events dashboardEventRepository, attendance dashboardAttendanceRepository, logger *zap.Logger, college config.CollegeConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{notices: notices, events: events, attendance: attendance, logger: logger, college: college}
}

// Overview builds the dashboard for the actor. The principal may narrow the
// college-wide view to one department; HODs always see their own.
func (s *DashboardService) Overview(ctx context.Context, actor models.AuthContext, department string) (*DashboardView, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff have a dashboard")
	}

	dept := ""
	if !actor.Principal() {
		dept = actor.Dept()
	} else if department != "" {
		if _, ok := s.college.DepartmentByCode(department); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown department")
		}
		dept = department
	}

	filter := models.ContentFilter{ActiveOnly: true}
	if dept != "" {
		filter.Scoped = true
		filter.Department = dept
	}
	recentFilter := filter
	recentFilter.Limit = dashboardRecentLimit

	notices, err := s.notices.List(ctx, recentFilter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent notices")
	}
	totalNotices, err := s.notices.CountActive(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count notices")
	}
	events, err := s.events.List(ctx, recentFilter, repository.EventOrderDateDesc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent events")
	}
	totalEvents, err := s.events.CountActive(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count events")
	}

	chart := make([]YearAttendance, 0, len(s.college.Years))
	for _, year := range s.college.Years {
		present, absent, err := s.attendance.TotalsByYear(ctx, dept, year)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance totals")
		}
		chart = append(chart, YearAttendance{
			Year:       year,
			Present:    present,
			Absent:     absent,
			Percentage: Percentage(present, absent),
		})
	}

	return &DashboardView{
		TotalNotices:  totalNotices,
		TotalEvents:   totalEvents,
		RecentNotices: notices,
		RecentEvents:  events,
		Attendance:    chart,
	}, nil
}
