package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vlat-exam/api/internal/models"
	appErr "github.com/vlat-exam/api/pkg/errors"
)

var userColumns = []string{"id", "login_id", "password", "full_name", "email", "phone", "created_at"}

func newRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewUserRepository(db), mock
}

func TestCreate_AssignsInsertID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec("^INSERT INTO `users` \\(`login_id`,`password`,`full_name`,`email`,`phone`,`created_at`\\) VALUES").
		WithArgs("VLAT007", "pw", "Ada Lovelace", "ada@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	phone := "5550100"
	u := &models.User{LoginID: "VLAT007", Password: "pw", FullName: "Ada Lovelace", Email: "ada@example.com", Phone: &phone}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, uint(7), u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	cause := errors.New("Duplicate entry 'VLAT001' for key 'users.idx_users_login_id'")
	mock.ExpectExec("^INSERT INTO `users`").WillReturnError(cause)

	err := repo.Create(context.Background(), &models.User{LoginID: "VLAT001"})
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInternal))
	assert.ErrorIs(t, err, cause)
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("^SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "VLAT003", "pw", "Grace", "grace@example.com", nil, created))

	var u models.User
	require.NoError(t, repo.GetByEmail(context.Background(), "grace@example.com", &u))
	assert.Equal(t, uint(3), u.ID)
	assert.Equal(t, "VLAT003", u.LoginID)
	assert.Nil(t, u.Phone)
	assert.True(t, created.Equal(u.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery("^SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns))

	var u models.User
	err := repo.GetByEmail(context.Background(), "nobody@example.com", &u)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestGetByLoginID_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery("^SELECT \\* FROM `users` WHERE login_id = \\?").
		WillReturnError(errors.New("db down"))

	var u models.User
	err := repo.GetByLoginID(context.Background(), "VLAT001", &u)
	assert.True(t, appErr.IsCode(err, appErr.CodeInternal))
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery("^SELECT \\* FROM `users` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(9, "VLAT009", "pw", "Alan", "alan@example.com", "123", time.Now()))

	var u models.User
	require.NoError(t, repo.GetByID(context.Background(), uint(9), &u))
	require.NotNil(t, u.Phone)
	assert.Equal(t, "123", *u.Phone)
}

func TestMaxID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery("^SELECT `id` FROM `users` ORDER BY id DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))

	got, err := repo.MaxID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(41), got)
}

func TestMaxID_EmptyTable(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery("^SELECT `id` FROM `users` ORDER BY id DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.MaxID(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestListNewestFirst(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery("^SELECT `id`,\\s?`login_id`,\\s?`email`,\\s?`full_name`,\\s?`phone`,\\s?`created_at` FROM `users` ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "login_id", "email", "full_name", "phone", "created_at"}).
			AddRow(2, "VLAT002", "b@example.com", "B", "2", time.Now()).
			AddRow(1, "VLAT001", "a@example.com", "A", "1", time.Now()))

	users, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "VLAT002", users[0].LoginID)
	assert.Equal(t, "VLAT001", users[1].LoginID)
	assert.Empty(t, users[0].Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery("^SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
