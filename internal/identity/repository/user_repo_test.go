package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/domain"
)

func setupMirrorRepo(t *testing.T) (*UserMirrorRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserMirrorRepository(db)
	return repo, mock, db
}

func TestUserMirrorRepository_Upsert(t *testing.T) {
	repo, mock, db := setupMirrorRepo(t)
	defer db.Close()

	t.Run("inserts the full record", func(t *testing.T) {
		rec := &domain.UserRecord{
			UID:           "uid-1",
			Email:         "user@example.com",
			DisplayName:   "Jane Doe",
			EmailVerified: true,
			CustomClaims:  map[string]interface{}{"admin": true},
		}

		mock.ExpectExec(`INSERT INTO identity_users`).
			WithArgs(
				sqlmock.AnyArg(), // id (UUID)
				"uid-1",
				"user@example.com",
				"", // phone_number, nulled by nullif
				"Jane Doe",
				"", // photo_url
				false,
				true,
				[]byte(`{"admin":true}`),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(context.Background(), rec)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent claims are stored as an empty object", func(t *testing.T) {
		rec := &domain.UserRecord{UID: "uid-2"}

		mock.ExpectExec(`INSERT INTO identity_users`).
			WithArgs(
				sqlmock.AnyArg(),
				"uid-2",
				"", "", "", "",
				false,
				false,
				[]byte(`{}`),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(context.Background(), rec)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserMirrorRepository_GetByUID(t *testing.T) {
	repo, mock, db := setupMirrorRepo(t)
	defer db.Close()

	cols := []string{"uid", "email", "phone_number", "display_name", "photo_url", "disabled", "email_verified", "custom_claims"}

	t.Run("reads a mirrored record back", func(t *testing.T) {
		mock.ExpectQuery(`SELECT uid, email, phone_number`).
			WithArgs("uid-1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("uid-1", "user@example.com", nil, "Jane Doe", nil, false, true, []byte(`{"admin":true}`)))

		rec, err := repo.GetByUID(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", rec.UID)
		assert.Equal(t, "user@example.com", rec.Email)
		assert.Empty(t, rec.PhoneNumber)
		assert.Equal(t, "Jane Doe", rec.DisplayName)
		assert.True(t, rec.EmailVerified)
		assert.Equal(t, true, rec.CustomClaims["admin"])

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to ErrUserNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT uid, email, phone_number`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByUID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserMirrorRepository_Delete(t *testing.T) {
	repo, mock, db := setupMirrorRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM identity_users`).
		WithArgs("uid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "uid-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
