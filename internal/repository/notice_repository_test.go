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

func newNoticeRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func noticeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "content", "department", "priority", "created_by", "created_at", "expires_at", "attachment", "attachment_type", "is_active", "views", "display_duration", "for_all_departments"})
}

func TestNoticeRepositoryListScoped(t *testing.T) {
	db, mock, cleanup := newNoticeRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	rows := noticeRows().
		AddRow("n-1", "Holiday", "College closed", "CSE", "normal", "hod-1", time.Now(), nil, nil, nil, true, 0, 0, false).
		AddRow("n-2", "Circular", "Shared notice", nil, "urgent", "principal-1", time.Now(), nil, nil, nil, true, 3, 0, true)
	mock.ExpectQuery(regexp.QuoteMeta("(department = $1 OR department IS NULL OR for_all_departments = TRUE)")).
		WithArgs("CSE").
		WillReturnRows(rows)

	notices, err := repo.List(context.Background(), models.ContentFilter{
		Department: "CSE",
		Scoped:     true,
		ActiveOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, notices, 2)
	require.Equal(t, "n-1", notices[0].ID)
	require.True(t, notices[1].ForAllDepartments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepositoryListUnscoped(t *testing.T) {
	db, mock, cleanup := newNoticeRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, department")).
		WillReturnRows(noticeRows())

	notices, err := repo.List(context.Background(), models.ContentFilter{})
	require.NoError(t, err)
	require.Empty(t, notices)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepositoryCreateAssignsDefaults(t *testing.T) {
	db, mock, cleanup := newNoticeRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notices")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	notice := &models.Notice{Title: "Holiday", Content: "College closed"}
	require.NoError(t, repo.Create(context.Background(), notice))
	require.NotEmpty(t, notice.ID)
	require.False(t, notice.CreatedAt.IsZero())
	require.True(t, notice.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepositoryIncrementViews(t *testing.T) {
	db, mock, cleanup := newNoticeRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notices SET views = views + 1 WHERE id = $1")).
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), "n-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newNoticeRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notices SET is_active = FALSE WHERE id = $1")).
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "n-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepositoryCountActive(t *testing.T) {
	db, mock, cleanup := newNoticeRepoMock(t)
	defer cleanup()

	repo := NewNoticeRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notices")).
		WithArgs("CSE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.CountActive(context.Background(), models.ContentFilter{Department: "CSE", Scoped: true})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
