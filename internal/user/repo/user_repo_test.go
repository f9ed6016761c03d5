package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduvox/service-core-go/internal/user/entity"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCreate_Success(t *testing.T) {
	r, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(int64(1), "alice", "a@x.com", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	u := &entity.User{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: "hashed"}
	require.NoError(t, r.Create(context.Background(), u))
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	u := &entity.User{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: "hashed"}
	err := r.Create(context.Background(), u)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreate_OtherError(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("connection reset"))

	err := r.Create(context.Background(), &entity.User{ID: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestExistsByIdentity(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("alice", "a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := r.ExistsByIdentity(context.Background(), "alice", "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetByIdentifier_MatchesUsernameOrEmail(t *testing.T) {
	r, mock := newMockRepo(t)
	now := time.Now()
	hash := "deadbeef"

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "refresh_token_hash", "created_at"}).
		AddRow(int64(7), "alice", "a@x.com", "hashed", hash, now)
	mock.ExpectQuery("FROM users WHERE username = \\$1 OR email = \\$1").
		WithArgs("a@x.com").
		WillReturnRows(rows)

	u, err := r.GetByIdentifier(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "alice", u.Username)
	require.NotNil(t, u.RefreshTokenHash)
	assert.Equal(t, hash, *u.RefreshTokenHash)
}

func TestGetByIdentifier_NotFound(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := r.GetByIdentifier(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByID_NullRefreshHash(t *testing.T) {
	r, mock := newMockRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "refresh_token_hash", "created_at"}).
		AddRow(int64(7), "alice", "a@x.com", "hashed", nil, now)
	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	u, err := r.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, u.RefreshTokenHash)
}

func TestUpdateRefreshTokenHash(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE users SET refresh_token_hash").
		WithArgs(int64(7), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.UpdateRefreshTokenHash(context.Background(), 7, "newhash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRefreshTokenHash_NoSuchUser(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE users SET refresh_token_hash").
		WithArgs(int64(404), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.UpdateRefreshTokenHash(context.Background(), 404, "newhash")
	assert.ErrorIs(t, err, ErrNotFound)
}
