package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/pkg/config"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByRegisterNumber(ctx context.Context, registerNumber string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	BulkCreate(ctx context.Context, students []models.Student) (int, error)
	SoftDelete(ctx context.Context, id string) error
}

// BulkImportReport summarises a spreadsheet import. Problem rows are
// reported, never silently dropped.
type BulkImportReport struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// StudentService manages the attendance roster. Rosters are HOD-owned; the
// principal has read access across departments.
type StudentService struct {
	students  studentRepository
	validator *validator.Validate
	logger    *zap.Logger
	college   config.CollegeConfig
}

// NewStudentService constructs a StudentService.
func NewStudentService(students studentRepository, validate *validator.Validate, logger *zap.Logger, college config.CollegeConfig) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{students: students, validator: validate, logger: logger, college: college}
}

// List returns active students of the actor's department for a year. The
// principal may pass any department code.
func (s *StudentService) List(ctx context.Context, actor models.AuthContext, department, year string) ([]models.Student, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can view the roster")
	}
	if !actor.Principal() {
		department = actor.Dept()
	}
	students, err := s.students.List(ctx, models.StudentFilter{
		Department: department,
		Year:       year,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Add registers a single student in the HOD's department.
func (s *StudentService) Add(ctx context.Context, actor models.AuthContext, req models.AddStudentRequest) (*models.Student, error) {
	if actor.Role != models.RoleHOD {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only a department HOD can manage the roster")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !yearKnown(s.college.Years, req.Year) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown year")
	}

	registerNumber := strings.TrimSpace(req.RegisterNumber)
	taken, err := s.students.ExistsByRegisterNumber(ctx, registerNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check register number")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "register number already exists")
	}

	student := &models.Student{
		Name:           strings.TrimSpace(req.Name),
		RegisterNumber: registerNumber,
		Department:     actor.Dept(),
		Year:           req.Year,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// BulkImport reads an .xlsx roster and inserts the valid rows. The sheet
// needs Name and Register Number columns; Year falls back to the form value
// when the sheet has no Year column. Each bad row is reported individually
// and the rest still import.
func (s *StudentService) BulkImport(ctx context.Context, actor models.AuthContext, defaultYear string, file io.Reader) (*BulkImportReport, error) {
	if actor.Role != models.RoleHOD {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only a department HOD can manage the roster")
	}
	if !yearKnown(s.college.Years, defaultYear) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown year")
	}

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is not a readable .xlsx workbook")
	}
	defer workbook.Close() //nolint:errcheck

	sheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read workbook rows")
	}
	if len(rows) < 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "workbook has no data rows")
	}

	nameCol, regCol, yearCol := headerColumns(rows[0])
	if nameCol < 0 || regCol < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "workbook needs Name and Register Number columns")
	}

	report := &BulkImportReport{}
	students := make([]models.Student, 0, len(rows)-1)
	seen := make(map[string]struct{})
	for i, row := range rows[1:] {
		rowNum := i + 2
		name := cell(row, nameCol)
		registerNumber := cell(row, regCol)
		if name == "" && registerNumber == "" {
			continue
		}
		if name == "" || registerNumber == "" {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: name and register number are required", rowNum))
			continue
		}
		year := defaultYear
		if yearCol >= 0 {
			if v := cell(row, yearCol); v != "" {
				year = v
			}
		}
		if !yearKnown(s.college.Years, year) {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: unknown year %q", rowNum, year))
			continue
		}
		if _, dup := seen[registerNumber]; dup {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: duplicate register number %s", rowNum, registerNumber))
			continue
		}
		seen[registerNumber] = struct{}{}
		students = append(students, models.Student{
			Name:           name,
			RegisterNumber: registerNumber,
			Department:     actor.Dept(),
			Year:           year,
		})
	}

	added, err := s.students.BulkCreate(ctx, students)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import students")
	}
	report.Added = added
	report.Skipped += len(students) - added
	s.logger.Info("roster import finished",
		zap.String("department", actor.Dept()),
		zap.Int("added", report.Added),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

// Delete soft-removes a student from the HOD's roster.
func (s *StudentService) Delete(ctx context.Context, actor models.AuthContext, id string) error {
	if actor.Role != models.RoleHOD {
		return appErrors.Clone(appErrors.ErrForbidden, "only a department HOD can manage the roster")
	}
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if student.Department != actor.Dept() {
		return appErrors.Clone(appErrors.ErrForbidden, "student belongs to another department")
	}
	if err := s.students.SoftDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

// headerColumns locates the name, register number and year columns by
// header text, tolerating common spellings and casings.
func headerColumns(header []string) (nameCol, regCol, yearCol int) {
	nameCol, regCol, yearCol = -1, -1, -1
	for i, raw := range header {
		normalized := strings.ToLower(strings.TrimSpace(raw))
		normalized = strings.ReplaceAll(normalized, "_", " ")
		switch normalized {
		case "name", "student name", "studentname":
			nameCol = i
		case "register number", "registernumber", "register no", "reg no", "regno":
			regCol = i
		case "year":
			yearCol = i
		}
	}
	return nameCol, regCol, yearCol
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
