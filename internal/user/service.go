// Package user implements the credential service: signup, login, and
// refresh-token rotation against the users table.
package user

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduvox/service-core-go/internal/token"
	"github.com/eduvox/service-core-go/internal/user/entity"
	userrepo "github.com/eduvox/service-core-go/internal/user/repo"
	"github.com/eduvox/service-core-go/pkg/utilities"
)

var (
	ErrDuplicateIdentity   = errors.New("user with the same email or username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInternal            = errors.New("internal error")
)

// Repository is the persistence surface the service needs from the users table.
type Repository interface {
	Create(ctx context.Context, u *entity.User) error
	ExistsByIdentity(ctx context.Context, username, email string) (bool, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	UpdateRefreshTokenHash(ctx context.Context, id int64, hash string) error
}

// TokenIssuer mints and verifies session token pairs.
type TokenIssuer interface {
	Issue(userID int64, username string) (*token.Pair, error)
	Parse(tokenString string) (*token.Claims, error)
}

// PasswordHasher defines the minimal hashing interface (abstract so we can
// swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// UserService orchestrates the authentication flows.
type UserService struct {
	repo   Repository
	issuer TokenIssuer
	hasher PasswordHasher
	logger *zap.SugaredLogger
}

func NewUserService(repo Repository, issuer TokenIssuer, hasher PasswordHasher, logger *zap.SugaredLogger) *UserService {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	return &UserService{repo: repo, issuer: issuer, hasher: hasher, logger: logger}
}

// SignUp creates a user with a hashed password and, on success, returns the
// result of Login for the new identity. That auto-login is the contract, not
// an implementation accident: callers get a token pair straight away.
func (s *UserService) SignUp(ctx context.Context, username, email, password string) (*token.Pair, error) {
	exists, err := s.repo.ExistsByIdentity(ctx, username, email)
	if err != nil {
		s.logger.Errorw("signup identity check failed", "err", err)
		return nil, ErrInternal
	}
	if exists {
		return nil, ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Errorw("password hashing failed", "err", err)
		return nil, ErrInternal
	}

	u := &entity.User{
		ID:           utilities.NewUserID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// a concurrent signup may win the race; the unique constraint is
		// the arbiter
		if errors.Is(err, userrepo.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		s.logger.Errorw("user insert failed", "err", err)
		return nil, ErrInternal
	}

	return s.Login(ctx, email, password)
}

// Login verifies credentials for a username-or-email identifier and issues a
// token pair. The SHA-256 digest of the refresh token is persisted on the
// user row, overwriting the previous one: a second login invalidates the
// refresh token from the first.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*token.Pair, error) {
	u, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Errorw("user lookup failed", "err", err)
		return nil, ErrInternal
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		// audit trail carries the identifier, never the password
		s.logger.Warnw("invalid credentials", "identifier", identifier)
		return nil, ErrInvalidCredentials
	}

	return s.issueAndStore(ctx, u)
}

// Refresh validates a presented refresh token against the stored hash and,
// on success, rotates it: a fresh pair is issued and its refresh hash
// replaces the old one.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	claims, err := s.issuer.Parse(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Errorw("user lookup failed", "err", err)
		return nil, ErrInternal
	}

	if u.RefreshTokenHash == nil || !constantTimeEqual(hashToken(refreshToken), *u.RefreshTokenHash) {
		// rotated away by a newer login or refresh
		s.logger.Warnw("stale refresh token", "user_id", u.ID)
		return nil, ErrInvalidRefreshToken
	}

	return s.issueAndStore(ctx, u)
}

// issueAndStore mints a token pair and persists the refresh-token hash.
// All-or-nothing from the caller's view: if the write fails, the generated
// tokens are discarded and never returned.
func (s *UserService) issueAndStore(ctx context.Context, u *entity.User) (*token.Pair, error) {
	pair, err := s.issuer.Issue(u.ID, u.Username)
	if err != nil {
		s.logger.Errorw("token generation failed", "err", err)
		return nil, ErrInternal
	}
	if err := s.repo.UpdateRefreshTokenHash(ctx, u.ID, hashToken(pair.RefreshToken)); err != nil {
		s.logger.Errorw("refresh token store failed", "err", err)
		return nil, ErrInternal
	}
	return pair, nil
}

// hashToken returns the SHA-256 hex digest of a token. Refresh tokens are
// high-entropy JWTs longer than bcrypt's 72-byte input limit, so a plain
// digest is used for the stored copy.
func hashToken(t string) string {
	sum := sha256.Sum256([]byte(t))
	return hex.EncodeToString(sum[:])
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
