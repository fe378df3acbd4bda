package service

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/pkg/config"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/export"
)

// registerWindowDays is the width of the rolling register view.
const registerWindowDays = 10

const dateLayout = "2006-01-02"

// Export formats accepted by the register export.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
	ExportFormatPDF  = "pdf"
)

type attendanceRepository interface {
	Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error)
	RecordsInRange(ctx context.Context, studentIDs []string, from, to time.Time) ([]models.AttendanceRecord, error)
	RecordsForDate(ctx context.Context, studentIDs []string, date time.Time) ([]models.AttendanceRecord, error)
	Counts(ctx context.Context, studentIDs []string) ([]models.AttendanceCount, error)
}

type attendanceStudentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
}

type exportStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type titledRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// RegisterView is the rolling attendance table shown to the HOD.
type RegisterView struct {
	Dates []string                      `json:"dates"`
	Rows  []models.StudentAttendanceRow `json:"rows"`
}

// ExportResult names a generated register file.
type ExportResult struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
}

// MarkResult reports how many records one marking pass wrote.
type MarkResult struct {
	Marked  int `json:"marked"`
	Ignored int `json:"ignored"`
}

// SheetRow is one roster entry on the marking sheet, with any status already
// recorded for the selected date.
type SheetRow struct {
	Student models.Student `json:"student"`
	Status  string         `json:"status,omitempty"`
}

// SheetView is the marking sheet for one date and year.
type SheetView struct {
	Date string     `json:"date"`
	Year string     `json:"year"`
	Rows []SheetRow `json:"rows"`
}

// AttendanceService owns the attendance register: marking, the rolling
// view and spreadsheet export. HODs work on their own department's roster;
// the principal names a department explicitly.
type AttendanceService struct {
	records   attendanceRepository
	students  attendanceStudentRepository
	exports   exportStore
	xlsx      datasetRenderer
	csv       datasetRenderer
	pdf       titledRenderer
	validator *validator.Validate
	logger    *zap.Logger
	college   config.CollegeConfig
	now       func() time.Time
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(records attendanceRepository, students attendanceStudentRepository, exports exportStore, validate *validator.Validate, logger *zap.Logger, college config.CollegeConfig) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AttendanceService{
		records:   records,
		students:  students,
		exports:   exports,
		xlsx:      export.NewXLSXExporter(),
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		college:   college,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Mark records present/absent statuses for one date. Statuses for students
// outside the department's roster and invalid status values are ignored and
// counted; marking the same student and date again overwrites.
func (s *AttendanceService) Mark(ctx context.Context, actor models.AuthContext, req models.MarkAttendanceRequest) (*MarkResult, error) {
	department, err := s.resolveDepartment(actor, req.Department)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if !yearKnown(s.college.Years, req.Year) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown year")
	}

	roster, err := s.students.List(ctx, models.StudentFilter{
		Department: department,
		Year:       req.Year,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	known := make(map[string]struct{}, len(roster))
	for _, student := range roster {
		known[student.ID] = struct{}{}
	}

	result := &MarkResult{}
	for studentID, raw := range req.Statuses {
		status := models.AttendanceStatus(strings.ToLower(strings.TrimSpace(raw)))
		if _, ok := known[studentID]; !ok || !status.Valid() {
			result.Ignored++
			continue
		}
		record := &models.AttendanceRecord{
			StudentID:  studentID,
			Date:       date,
			Status:     status,
			RecordedBy: &actor.UserID,
		}
		if _, err := s.records.Upsert(ctx, record); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
		}
		result.Marked++
	}
	s.logger.Info("attendance marked",
		zap.String("department", department),
		zap.String("date", req.Date),
		zap.Int("marked", result.Marked),
		zap.Int("ignored", result.Ignored))
	return result, nil
}

// Sheet returns the marking sheet for one date: the department's roster for
// the year with any statuses already recorded, so re-opening a day shows
// what was saved. An empty date means today.
func (s *AttendanceService) Sheet(ctx context.Context, actor models.AuthContext, department, year, rawDate string) (*SheetView, error) {
	department, err := s.resolveDepartment(actor, department)
	if err != nil {
		return nil, err
	}
	if !yearKnown(s.college.Years, year) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown year")
	}
	date := s.now().Truncate(24 * time.Hour)
	if rawDate != "" {
		parsed, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	roster, err := s.students.List(ctx, models.StudentFilter{
		Department: department,
		Year:       year,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	view := &SheetView{Date: date.Format(dateLayout), Year: year}
	if len(roster) == 0 {
		return view, nil
	}

	ids := make([]string, 0, len(roster))
	for _, student := range roster {
		ids = append(ids, student.ID)
	}
	records, err := s.records.RecordsForDate(ctx, ids, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance records")
	}
	statuses := make(map[string]string, len(records))
	for _, record := range records {
		statuses[record.StudentID] = string(record.Status)
	}

	view.Rows = make([]SheetRow, 0, len(roster))
	for _, student := range roster {
		view.Rows = append(view.Rows, SheetRow{Student: student, Status: statuses[student.ID]})
	}
	return view, nil
}

// Register builds the rolling view: the last ten days per student plus
// all-time totals and percentage.
func (s *AttendanceService) Register(ctx context.Context, actor models.AuthContext, department, year string) (*RegisterView, error) {
	department, err := s.resolveDepartment(actor, department)
	if err != nil {
		return nil, err
	}
	if !yearKnown(s.college.Years, year) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown year")
	}

	roster, err := s.students.List(ctx, models.StudentFilter{
		Department: department,
		Year:       year,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	today := s.now().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -(registerWindowDays - 1))
	dates := make([]string, 0, registerWindowDays)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}

	view := &RegisterView{Dates: dates, Rows: make([]models.StudentAttendanceRow, 0, len(roster))}
	if len(roster) == 0 {
		return view, nil
	}

	ids := make([]string, 0, len(roster))
	for _, student := range roster {
		ids = append(ids, student.ID)
	}
	records, err := s.records.RecordsInRange(ctx, ids, from, today)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	counts, err := s.records.Counts(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance totals")
	}

	byStudent := make(map[string]map[string]string, len(roster))
	for _, record := range records {
		day := record.Date.Format(dateLayout)
		if byStudent[record.StudentID] == nil {
			byStudent[record.StudentID] = make(map[string]string, registerWindowDays)
		}
		byStudent[record.StudentID][day] = statusMark(record.Status)
	}
	totals := make(map[string]models.AttendanceCount, len(counts))
	for _, count := range counts {
		totals[count.StudentID] = count
	}

	for _, student := range roster {
		marks := make(map[string]string, len(dates))
		for _, day := range dates {
			mark := "-"
			if m, ok := byStudent[student.ID][day]; ok {
				mark = m
			}
			marks[day] = mark
		}
		total := totals[student.ID]
		view.Rows = append(view.Rows, models.StudentAttendanceRow{
			Student:    student,
			Dates:      marks,
			Present:    total.Present,
			Absent:     total.Absent,
			Percentage: Percentage(total.Present, total.Absent),
		})
	}
	return view, nil
}

// Export renders the rolling register into a downloadable file and stores
// it under the exports directory.
func (s *AttendanceService) Export(ctx context.Context, actor models.AuthContext, department, year, format string) (*ExportResult, error) {
	if format == "" {
		format = ExportFormatXLSX
	}
	department, err := s.resolveDepartment(actor, department)
	if err != nil {
		return nil, err
	}
	view, err := s.Register(ctx, actor, department, year)
	if err != nil {
		return nil, err
	}

	headers := []string{"S.No", "Name", "Register Number"}
	headers = append(headers, view.Dates...)
	headers = append(headers, "Present", "Absent", "Overall Attendance %")

	rows := make([]map[string]string, 0, len(view.Rows))
	for i, row := range view.Rows {
		record := map[string]string{
			"S.No":                 fmt.Sprintf("%d", i+1),
			"Name":                 row.Student.Name,
			"Register Number":      row.Student.RegisterNumber,
			"Present":              fmt.Sprintf("%d", row.Present),
			"Absent":               fmt.Sprintf("%d", row.Absent),
			"Overall Attendance %": fmt.Sprintf("%.1f", row.Percentage),
		}
		for _, day := range view.Dates {
			record[day] = row.Dates[day]
		}
		rows = append(rows, record)
	}
	dataset := export.Dataset{Headers: headers, Rows: rows}

	var payload []byte
	switch format {
	case ExportFormatXLSX:
		payload, err = s.xlsx.Render(dataset)
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		title := fmt.Sprintf("Attendance Register %s %s", department, year)
		payload, err = s.pdf.Render(dataset, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be xlsx, csv or pdf")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.%s",
		strings.ToLower(department),
		strings.ReplaceAll(strings.ToLower(year), " ", "_"),
		s.now().Format("20060102150405"),
		format)
	if _, err := s.exports.Save(filename, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	return &ExportResult{Filename: filename, Format: format}, nil
}

// resolveDepartment picks the register's department: HODs always use their
// own, the principal must name a configured one.
func (s *AttendanceService) resolveDepartment(actor models.AuthContext, requested string) (string, error) {
	if !actor.Role.Admin() {
		return "", appErrors.Clone(appErrors.ErrForbidden, "only staff can use the attendance register")
	}
	if actor.Role == models.RoleHOD {
		return actor.Dept(), nil
	}
	if requested == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "department is required")
	}
	if _, ok := s.college.DepartmentByCode(requested); !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown department")
	}
	return requested, nil
}

// Open returns a read handle for a stored export file.
func (s *AttendanceService) Open(filename string) (*os.File, error) {
	return s.exports.Open(filename)
}

// Cleanup removes export files older than ttl.
func (s *AttendanceService) Cleanup(ttl time.Duration) ([]string, error) {
	return s.exports.CleanupOlderThan(ttl)
}

// Percentage computes present/(present+absent)*100 rounded to one decimal,
// or zero when no records exist.
func Percentage(present, absent int) float64 {
	total := present + absent
	if total == 0 {
		return 0
	}
	p := float64(present) / float64(total) * 100
	return math.Round(p*10) / 10
}

func statusMark(status models.AttendanceStatus) string {
	switch status {
	case models.AttendancePresent:
		return "P"
	case models.AttendanceAbsent:
		return "A"
	default:
		return "-"
	}
}
