package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "audio-vault-api/internal/domain/user"
)

var userCols = []string{
	"uuid", "email", "name", "yandex_id",
	"is_active", "is_superuser",
	"access_token", "refresh_token", "token_expires",
	"created_at", "updated_at",
}

func userRow(u User) *pgxmock.Rows {
	return pgxmock.NewRows(userCols).AddRow(
		u.UUID, u.Email, u.Name, u.YandexID,
		u.IsActive, u.IsSuperuser,
		u.AccessToken, u.RefreshToken, u.TokenExpires,
		u.CreatedAt, u.UpdatedAt,
	)
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, domain.Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepository(mock)
}

func TestReconcileProviderLogin_CreatesNewUser(t *testing.T) {
	mock, repo := newMock(t)

	now := time.Now()
	created := User{
		UUID:         uuid.New(),
		Email:        "a@b.com",
		Name:         "Alice",
		YandexID:     "42",
		IsActive:     true,
		IsSuperuser:  false,
		AccessToken:  "ya-token",
		TokenExpires: now.Add(30 * 24 * time.Hour).Unix(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("42", "a@b.com").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@b.com", "Alice", "42", "ya-token", "", created.TokenExpires).
		WillReturnRows(userRow(created))
	mock.ExpectCommit()

	u, err := repo.ReconcileProviderLogin(context.Background(), domain.User{
		Email:        "a@b.com",
		Name:         "Alice",
		YandexID:     "42",
		AccessToken:  "ya-token",
		TokenExpires: created.TokenExpires,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, created.UUID, u.UUID)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsSuperuser)
	assert.Empty(t, u.RefreshToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileProviderLogin_UpdatesExistingUser(t *testing.T) {
	mock, repo := newMock(t)

	id := uuid.New()
	existing := User{
		UUID:        id,
		Email:       "a@b.com",
		Name:        "Alice",
		YandexID:    "42",
		IsActive:    true,
		AccessToken: "old-token",
	}
	refreshed := existing
	refreshed.AccessToken = "new-token"
	refreshed.TokenExpires = 1800000000

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("42", "a@b.com").
		WillReturnRows(userRow(existing))
	mock.ExpectQuery("UPDATE users").
		WithArgs("42", "Alice", "new-token", refreshed.TokenExpires, id).
		WillReturnRows(userRow(refreshed))
	mock.ExpectCommit()

	u, err := repo.ReconcileProviderLogin(context.Background(), domain.User{
		Email:        "a@b.com",
		Name:         "Alice",
		YandexID:     "42",
		AccessToken:  "new-token",
		TokenExpires: refreshed.TokenExpires,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.UUID, "existing row must be reused")
	assert.Equal(t, "new-token", u.AccessToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileProviderLogin_KeepsNameWhenProviderOmitsIt(t *testing.T) {
	mock, repo := newMock(t)

	id := uuid.New()
	existing := User{UUID: id, Email: "a@b.com", Name: "Alice", YandexID: "42", IsActive: true}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("42", "a@b.com").
		WillReturnRows(userRow(existing))
	mock.ExpectQuery("UPDATE users").
		WithArgs("42", "Alice", "tok", int64(0), id).
		WillReturnRows(userRow(existing))
	mock.ExpectCommit()

	_, err := repo.ReconcileProviderLogin(context.Background(), domain.User{
		Email:       "a@b.com",
		YandexID:    "42",
		AccessToken: "tok",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileProviderLogin_ConflictOnConcurrentInsert(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("42", "a@b.com").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_yandex_id_key"})
	mock.ExpectRollback()

	u, err := repo.ReconcileProviderLogin(context.Background(), domain.User{
		Email:    "a@b.com",
		YandexID: "42",
	})
	require.ErrorIs(t, err, ErrUserConflict)
	assert.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchUserByID_NotFound(t *testing.T) {
	mock, repo := newMock(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.FetchUserByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser(t *testing.T) {
	mock, repo := newMock(t)

	id := uuid.New()
	mock.ExpectQuery("DELETE FROM users").
		WithArgs(id).
		WillReturnRows(userRow(User{UUID: id, Email: "a@b.com", YandexID: "42"}))

	u, err := repo.DeleteUser(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.UUID)
	require.NoError(t, mock.ExpectationsWereMet())
}
