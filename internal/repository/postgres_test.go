package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleverai/api/internal/models"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var userColumns = []string{"id", "username", "email", "password_hash", "created_at"}

func TestEnsureSchema(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, EnsureSchema(context.Background(), mock))
}

func TestPostgresUserCreate(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "a@x.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	repo := NewPostgresUserRepository(mock)
	user, err := repo.Create(context.Background(), models.NewUser{Username: "alice", Email: "a@x.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.Equal(t, "alice", user.Username)
}

func TestPostgresUserCreateUniqueViolation(t *testing.T) {
	cases := map[string]error{
		"users_username_key": ErrUsernameTaken,
		"users_email_key":    ErrEmailTaken,
	}
	for constraint, want := range cases {
		t.Run(constraint, func(t *testing.T) {
			mock := newMockPool(t)
			mock.ExpectQuery("INSERT INTO users").
				WithArgs("alice", "a@x.com", "hash").
				WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint})

			repo := NewPostgresUserRepository(mock)
			_, err := repo.Create(context.Background(), models.NewUser{Username: "alice", Email: "a@x.com", PasswordHash: "hash"})
			assert.ErrorIs(t, err, want)
		})
	}
}

func TestPostgresUserCreateOtherError(t *testing.T) {
	mock := newMockPool(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "a@x.com", "hash").
		WillReturnError(boom)

	repo := NewPostgresUserRepository(mock)
	_, err := repo.Create(context.Background(), models.NewUser{Username: "alice", Email: "a@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUsernameTaken)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestPostgresUserLookups(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(1), "alice", "a@x.com", "hash", now))
	mock.ExpectQuery("FROM users WHERE username = \\$1").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(1), "alice", "a@x.com", "hash", now))
	mock.ExpectQuery("FROM users WHERE email = \\$1").
		WithArgs("missing@x.com").
		WillReturnRows(pgxmock.NewRows(userColumns))

	repo := NewPostgresUserRepository(mock)
	ctx := context.Background()

	byID, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byName.Email)

	_, err = repo.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostgresContactCreate(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now().UTC()
	company := "Acme"

	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs("Jo", "jo@x.com", &company, "hello there friend").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	repo := NewPostgresContactRepository(mock)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.NewContact{Name: "Jo", Email: "jo@x.com", Company: &company, Message: "hello there friend"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, "Jo", created.Name)
	require.NotNil(t, created.Company)
	assert.Equal(t, "Acme", *created.Company)
}
