package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sincet/noticeboard-api/internal/models"
)

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert inserts or overwrites the record for (student_id, date). Marking
// the same student and date again replaces the status; last writer wins.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attendance_records (id, student_id, date, status, recorded_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (student_id, date)
DO UPDATE SET status = EXCLUDED.status, recorded_by = EXCLUDED.recorded_by
RETURNING id, student_id, date, status, recorded_by, created_at`
	var stored models.AttendanceRecord
	if err := r.db.GetContext(ctx, &stored, query, record.ID, record.StudentID, record.Date, record.Status, record.RecordedBy, record.CreatedAt); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return &stored, nil
}

// RecordsInRange returns the records for the given students between two
// dates inclusive.
func (r *AttendanceRepository) RecordsInRange(ctx context.Context, studentIDs []string, from, to time.Time) ([]models.AttendanceRecord, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT id, student_id, date, status, recorded_by, created_at
FROM attendance_records
WHERE student_id = ANY($1) AND date >= $2 AND date <= $3
ORDER BY date ASC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, pq.Array(studentIDs), from, to); err != nil {
		return nil, fmt.Errorf("attendance records in range: %w", err)
	}
	return records, nil
}

// RecordsForDate returns the records for the given students on one date.
func (r *AttendanceRepository) RecordsForDate(ctx context.Context, studentIDs []string, date time.Time) ([]models.AttendanceRecord, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT id, student_id, date, status, recorded_by, created_at
FROM attendance_records
WHERE student_id = ANY($1) AND date = $2`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, pq.Array(studentIDs), date); err != nil {
		return nil, fmt.Errorf("attendance records for date: %w", err)
	}
	return records, nil
}

// Counts aggregates all-time present/absent totals per student.
func (r *AttendanceRepository) Counts(ctx context.Context, studentIDs []string) ([]models.AttendanceCount, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT student_id,
COUNT(*) FILTER (WHERE status = 'present') AS present,
COUNT(*) FILTER (WHERE status = 'absent') AS absent
FROM attendance_records
WHERE student_id = ANY($1)
GROUP BY student_id`
	var counts []models.AttendanceCount
	if err := r.db.SelectContext(ctx, &counts, query, pq.Array(studentIDs)); err != nil {
		return nil, fmt.Errorf("attendance counts: %w", err)
	}
	return counts, nil
}

// TotalsByYear sums present/absent across all active students of a year,
// optionally restricted to one department. Feeds the dashboard chart.
func (r *AttendanceRepository) TotalsByYear(ctx context.Context, department, year string) (present, absent int, err error) {
	query := `SELECT
COUNT(*) FILTER (WHERE ar.status = 'present') AS present,
COUNT(*) FILTER (WHERE ar.status = 'absent') AS absent
FROM attendance_records ar
JOIN students s ON s.id = ar.student_id
WHERE s.is_active = TRUE AND s.year = $1 AND ($2 = '' OR s.department = $2)`
	row := struct {
		Present int `db:"present"`
		Absent  int `db:"absent"`
	}{}
	if err := r.db.GetContext(ctx, &row, query, year, department); err != nil {
		return 0, 0, fmt.Errorf("attendance totals by year: %w", err)
	}
	return row.Present, row.Absent, nil
}
