package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/model"
)

var refreshTokenRow = []string{
	"token_hash", "user_id", "created_at", "expires_at", "revoked_at", "revoked_reason",
	"replaced_by_hash", "ip_address", "device_info",
}

func newRefreshRepoWithMock(t *testing.T) (*RefreshTokenRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRefreshTokenRepository(db), mock
}

func TestRefreshTokenRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	token := model.RefreshToken{
		TokenHash: "h1",
		UserID:    uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
		IPAddress: "10.0.0.1",
	}

	t.Run("success", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectExec(`(?s)INSERT INTO refresh_tokens`).
			WithArgs("h1", token.UserID, now, token.ExpiresAt, nil, nil, nil, "10.0.0.1", "").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), token))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate hash", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectExec(`(?s)INSERT INTO refresh_tokens`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		assert.ErrorIs(t, repo.Create(context.Background(), token), model.ErrDuplicate)
	})
}

func TestRefreshTokenRepository_GetByHash(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()
	q := `(?s)SELECT token_hash.*FROM refresh_tokens WHERE token_hash = \$1`

	t.Run("revoked record", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectQuery(q).
			WithArgs("h1").
			WillReturnRows(sqlmock.NewRows(refreshTokenRow).
				AddRow("h1", userID.String(), now, now.Add(time.Hour), now, "rotated", "h2", "", "curl"))

		got, err := repo.GetByHash(context.Background(), "h1")
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
		require.True(t, got.Revoked())
		assert.Equal(t, model.RevocationRotated, *got.RevokedReason)
		assert.Equal(t, "h2", *got.ReplacedByHash)
		assert.Equal(t, "curl", got.DeviceInfo)
	})

	t.Run("active record", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectQuery(q).
			WithArgs("h1").
			WillReturnRows(sqlmock.NewRows(refreshTokenRow).
				AddRow("h1", userID.String(), now, now.Add(time.Hour), nil, nil, nil, "", ""))

		got, err := repo.GetByHash(context.Background(), "h1")
		require.NoError(t, err)
		assert.True(t, got.Active(now))
		assert.Nil(t, got.RevokedReason)
		assert.Nil(t, got.ReplacedByHash)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByHash(context.Background(), "missing")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestRefreshTokenRepository_Rotate(t *testing.T) {
	now := time.Now().UTC()
	next := model.RefreshToken{
		TokenHash: "h2",
		UserID:    uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	lock := `SELECT revoked_at IS NOT NULL FROM refresh_tokens WHERE token_hash = \$1 FOR UPDATE`

	t.Run("success", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs("h1").
			WillReturnRows(sqlmock.NewRows([]string{"revoked"}).AddRow(false))
		mock.ExpectExec(`(?s)UPDATE refresh_tokens SET revoked_at = \$2, revoked_reason = \$3, replaced_by_hash = \$4`).
			WithArgs("h1", now, "rotated", "h2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`(?s)INSERT INTO refresh_tokens`).
			WithArgs("h2", next.UserID, now, next.ExpiresAt, nil, nil, nil, "", "").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Rotate(context.Background(), "h1", next, now))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already revoked", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs("h1").
			WillReturnRows(sqlmock.NewRows([]string{"revoked"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.Rotate(context.Background(), "h1", next, now)
		assert.ErrorIs(t, err, model.ErrTokenRevoked)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs("h1").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Rotate(context.Background(), "h1", next, now), model.ErrNotFound)
	})

	t.Run("insert failure rolls back revocation", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs("h1").
			WillReturnRows(sqlmock.NewRows([]string{"revoked"}).AddRow(false))
		mock.ExpectExec(`UPDATE refresh_tokens`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO refresh_tokens`).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.Rotate(context.Background(), "h1", next, now)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRefreshTokenRepository_Revoke(t *testing.T) {
	now := time.Now().UTC()
	revoke := `(?s)UPDATE refresh_tokens SET revoked_at = \$2, revoked_reason = \$3\s+WHERE token_hash = \$1 AND revoked_at IS NULL`
	exists := `SELECT EXISTS`

	t.Run("revoked", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectExec(revoke).WithArgs("h1", now, "logout").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Revoke(context.Background(), "h1", model.RevocationLogout, now))
	})

	t.Run("already revoked", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectExec(revoke).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(exists).WithArgs("h1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.ErrorIs(t, repo.Revoke(context.Background(), "h1", model.RevocationLogout, now), model.ErrTokenRevoked)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRefreshRepoWithMock(t)
		mock.ExpectExec(revoke).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(exists).WithArgs("h1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		assert.ErrorIs(t, repo.Revoke(context.Background(), "h1", model.RevocationLogout, now), model.ErrNotFound)
	})
}

func TestRefreshTokenRepository_RevokeAllByUser(t *testing.T) {
	repo, mock := newRefreshRepoWithMock(t)
	userID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectExec(`(?s)UPDATE refresh_tokens.*WHERE user_id = \$1 AND revoked_at IS NULL AND expires_at > \$2`).
		WithArgs(userID, now, "reuse_detected").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.RevokeAllByUser(context.Background(), userID, model.RevocationReuseDetected, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRefreshTokenRepository_ListByUser(t *testing.T) {
	repo, mock := newRefreshRepoWithMock(t)
	userID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)FROM refresh_tokens WHERE user_id = \$1 ORDER BY created_at`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(refreshTokenRow).
			AddRow("h1", userID.String(), now, now.Add(time.Hour), now, "rotated", "h2", "", "").
			AddRow("h2", userID.String(), now, now.Add(time.Hour), nil, nil, nil, "", ""))

	got, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Revoked())
	assert.False(t, got[1].Revoked())
}
