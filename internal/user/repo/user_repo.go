package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/eduvox/service-core-go/internal/user/entity"
)

var (
	// ErrNotFound signals that no user matched the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate signals a unique-constraint violation on username or email.
	ErrDuplicate = errors.New("duplicate username or email")
)

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. The caller supplies the ID; created_at is
// assigned by the database and read back into u. Unique-constraint races
// surface as ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4) RETURNING created_at`
	if err := r.db.QueryRowxContext(ctx, q, u.ID, u.Username, u.Email, u.PasswordHash).Scan(&u.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// ExistsByIdentity reports whether any user already holds the username or
// the email.
func (r *UserRepo) ExistsByIdentity(ctx context.Context, username, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, username, email); err != nil {
		return false, fmt.Errorf("check identity: %w", err)
	}
	return exists, nil
}

// GetByIdentifier returns the user whose username or email equals the
// identifier, or ErrNotFound.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	const q = `SELECT id, username, email, password_hash, refresh_token_hash, created_at
		FROM users WHERE username = $1 OR email = $1`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by identifier: %w", err)
	}
	return &u, nil
}

// GetByID fetches a user row by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const q = `SELECT id, username, email, password_hash, refresh_token_hash, created_at
		FROM users WHERE id = $1`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// UpdateRefreshTokenHash overwrites the stored refresh-token hash for the
// user, invalidating any previously issued refresh token.
func (r *UserRepo) UpdateRefreshTokenHash(ctx context.Context, id int64, hash string) error {
	const q = `UPDATE users SET refresh_token_hash = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, hash)
	if err != nil {
		return fmt.Errorf("update refresh token hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update refresh token hash: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
