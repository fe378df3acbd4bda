package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/sincet/noticeboard-api/internal/models"
)

func newStudentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "register_number", "department", "year", "created_at", "is_active"})
}

func TestStudentRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	rows := studentRows().
		AddRow("s1", "Anu", "101", "CSE", "2nd Year", time.Now(), true)
	mock.ExpectQuery(regexp.QuoteMeta("department = $1 AND year = $2 ORDER BY name ASC")).
		WithArgs("CSE", "2nd Year").
		WillReturnRows(rows)

	students, err := repo.List(context.Background(), models.StudentFilter{
		Department: "CSE",
		Year:       "2nd Year",
		ActiveOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "Anu", students[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExistsByRegisterNumber(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE register_number = $1 LIMIT 1")).
		WithArgs("101").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	taken, err := repo.ExistsByRegisterNumber(context.Background(), "101")
	require.NoError(t, err)
	require.True(t, taken)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE register_number = $1 LIMIT 1")).
		WithArgs("999").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	taken, err = repo.ExistsByRegisterNumber(context.Background(), "999")
	require.NoError(t, err)
	require.False(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateAssignsDefaults(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{Name: "Anu", RegisterNumber: "101", Department: "CSE", Year: "2nd Year"}
	require.NoError(t, repo.Create(context.Background(), student))
	require.NotEmpty(t, student.ID)
	require.True(t, student.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryBulkCreateSkipsConflicts(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (register_number) DO NOTHING RETURNING id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s1"))
	// Second insert hits an existing register number; no row comes back.
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (register_number) DO NOTHING RETURNING id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	added, err := repo.BulkCreate(context.Background(), []models.Student{
		{Name: "Anu", RegisterNumber: "101", Department: "CSE", Year: "2nd Year"},
		{Name: "Bala", RegisterNumber: "102", Department: "CSE", Year: "2nd Year"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryBulkCreateEmpty(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	added, err := repo.BulkCreate(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newStudentRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET is_active = FALSE WHERE id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "s1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
