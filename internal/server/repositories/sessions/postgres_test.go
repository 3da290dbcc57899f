package sessions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/peerwallet/internal/common"
	"github.com/dmitrijs2005/peerwallet/internal/server/models"
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

func TestCreate(t *testing.T) {
	q := `(?s)^INSERT\s+INTO\s+sessions\s*\(id,\s*user_id,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+created_at$`
	exp := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	created := exp.Add(-time.Hour)

	t.Run("ok", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("sid", int64(3), exp).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

		s := &models.Session{ID: "sid", UserID: 3, ExpiresAt: exp}
		require.NoError(t, repo.Create(context.Background(), s))
		assert.Equal(t, created, s.CreatedAt)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnError(errors.New("boom"))

		err := repo.Create(context.Background(), &models.Session{ID: "sid"})
		assert.ErrorContains(t, err, "db error: boom")
	})
}

func TestFind(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*user_id,\s*created_at,\s*expires_at\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		now := time.Now().UTC()
		mock.ExpectQuery(q).WithArgs("sid").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "expires_at"}).
				AddRow("sid", int64(3), now, now.Add(time.Hour)))

		s, err := repo.Find(context.Background(), "sid")
		require.NoError(t, err)
		assert.Equal(t, int64(3), s.UserID)
		assert.True(t, s.Active(now))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("nope").WillReturnError(sql.ErrNoRows)

		_, err := repo.Find(context.Background(), "nope")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestExpire(t *testing.T) {
	q := `(?s)^UPDATE\s+sessions\s+SET\s+expires_at\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s+AND\s+expires_at\s*>\s*\$2$`
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ok", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs("sid", at).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Expire(context.Background(), "sid", at))
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs("sid", at).WillReturnError(errors.New("locked"))

		assert.Error(t, repo.Expire(context.Background(), "sid", at))
	})
}
