package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sincet/noticeboard-api/internal/models"
)

// StudentRepository manages persistence for roster entries.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, name, register_number, department, year, created_at, is_active`

// List returns students matching the filter ordered by name.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.Department != "" {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Year != "" {
		where = append(where, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	query := fmt.Sprintf("SELECT %s FROM students WHERE %s ORDER BY name ASC", studentColumns, strings.Join(where, " AND "))

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student regardless of active state.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByRegisterNumber checks if a register number is already taken.
func (r *StudentRepository) ExistsByRegisterNumber(ctx context.Context, registerNumber string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM students WHERE register_number = $1 LIMIT 1", registerNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check register number: %w", err)
	}
	return true, nil
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}
	student.IsActive = true
	const query = `INSERT INTO students (id, name, register_number, department, year, created_at, is_active)
VALUES (:id, :name, :register_number, :department, :year, :created_at, :is_active)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// BulkCreate inserts many students in one transaction, skipping register
// numbers that already exist, and returns the number actually added.
func (r *StudentRepository) BulkCreate(ctx context.Context, students []models.Student) (int, error) {
	if len(students) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin bulk students: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback() //nolint:errcheck
		}
	}()

	const query = `INSERT INTO students (id, name, register_number, department, year, created_at, is_active)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)
ON CONFLICT (register_number) DO NOTHING RETURNING id`
	now := time.Now().UTC()
	added := 0
	for i := range students {
		st := &students[i]
		if st.ID == "" {
			st.ID = uuid.NewString()
		}
		if st.CreatedAt.IsZero() {
			st.CreatedAt = now
		}
		var insertedID string
		err := tx.QueryRowxContext(ctx, query, st.ID, st.Name, st.RegisterNumber, st.Department, st.Year, st.CreatedAt).Scan(&insertedID)
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return 0, fmt.Errorf("bulk insert student: %w", err)
		}
		added++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk students: %w", err)
	}
	commit = true
	return added, nil
}

// SoftDelete flips is_active; students are never hard-deleted.
func (r *StudentRepository) SoftDelete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE students SET is_active = FALSE WHERE id = $1", id); err != nil {
		return fmt.Errorf("soft delete student: %w", err)
	}
	return nil
}
