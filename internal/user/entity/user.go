package entity

import "time"

// User represents an account row in the `users` table. RefreshTokenHash is
// the SHA-256 hex digest of the most recently issued refresh token; the
// service stores one active session per user, so every login overwrites it.
type User struct {
	ID               int64     `db:"id"`
	Username         string    `db:"username"`
	Email            string    `db:"email"`
	PasswordHash     string    `db:"password_hash"`
	RefreshTokenHash *string   `db:"refresh_token_hash"`
	CreatedAt        time.Time `db:"created_at"`
}
