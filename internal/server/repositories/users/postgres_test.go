package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/peerwallet/internal/common"
	"github.com/dmitrijs2005/peerwallet/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*username,\s*email,\s*password_hash,\s*salt,\s*avatar\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*verified,\s*created_at\s*$`

func newUser() *models.User {
	return &models.User{
		Name: "Мария Лебедева", Username: "mlebed", Email: "m@x.ru",
		PasswordHash: []byte("hash"), Salt: []byte("salt"), Avatar: "МЛ",
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQ).
		WithArgs("Мария Лебедева", "mlebed", "m@x.ru", []byte("hash"), []byte("salt"), "МЛ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "verified", "created_at"}).AddRow(int64(7), false, created))

	got, err := repo.Create(context.Background(), newUser())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "mlebed", got.Username)
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), newUser())
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), newUser())
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestGetByEmail(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*name,\s*username,\s*email,\s*password_hash,\s*salt,\s*avatar,\s*verified,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`
	cols := []string{"id", "name", "username", "email", "password_hash", "salt", "avatar", "verified", "created_at"}

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("m@x.ru").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(7), "Мария Лебедева", "mlebed", "m@x.ru", []byte("h"), []byte("s"), "МЛ", true, time.Now()))

		u, err := repo.GetByEmail(context.Background(), "m@x.ru")
		require.NoError(t, err)
		assert.Equal(t, int64(7), u.ID)
		assert.True(t, u.Verified)
		assert.Equal(t, []byte("h"), u.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("ghost@x.ru").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "ghost@x.ru")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("m@x.ru").WillReturnError(errors.New("db err"))

		_, err := repo.GetByEmail(context.Background(), "m@x.ru")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^SELECT\s+.+\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`

	mock.ExpectQuery(q).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestExists(t *testing.T) {
	q := `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+OR\s+username\s*=\s*\$2\)$`

	for _, want := range []bool{true, false} {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("m@x.ru", "mlebed").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(want))

		got, err := repo.Exists(context.Background(), "m@x.ru", "mlebed")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
