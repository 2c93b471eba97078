package repository

import (
	"regexp"
	"testing"

	"manhwahub/internal/microservices/http-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestCommentCreate_LeavesEditTimestampUnset(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	comment := &models.Comment{
		ManhwaID:  7,
		ChapterID: 3,
		UserID:    "user-1",
		Username:  "reader",
		Content:   "first!",
	}
	err := repo.Create(comment)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())
	// a freshly created comment has never been edited
	assert.Nil(t, comment.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDelete_CascadesRepliesAndReactions(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "comments" WHERE parent_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)).AddRow(int64(3)))
	// reactions go first, for the replies and the comment itself
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comment_reactions" WHERE comment_id IN ($1,$2,$3)`)).
		WithArgs(int64(2), int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE parent_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDelete_NoRepliesStillPurgesOwnReactions(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "comments" WHERE parent_id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comment_reactions" WHERE comment_id IN ($1)`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE parent_id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDelete_MissingCommentRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "comments" WHERE parent_id = $1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comment_reactions" WHERE comment_id IN ($1)`)).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE parent_id = $1`)).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(404)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
