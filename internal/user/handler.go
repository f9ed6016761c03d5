package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/eduvox/service-core-go/internal/token"
)

// Service is the slice of UserService the handler depends on.
type Service interface {
	SignUp(ctx context.Context, username, email, password string) (*token.Pair, error)
	Login(ctx context.Context, identifier, password string) (*token.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (*token.Pair, error)
}

// Handler exposes HTTP endpoints for user operations (signup / login / refresh).
type Handler struct {
	svc    Service
	logger *zap.SugaredLogger
}

func NewHandler(svc Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// SignupRequest is the wire body for POST /user/create. The hash_password
// field carries the PLAINTEXT password; the misleading name is part of the
// frontend contract and is kept on the wire only.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"hash_password"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid signup payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := validateSignup(req); err != nil {
		h.logger.Debugw("signup validation failed", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	pair, err := h.svc.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateIdentity) {
			h.writeJSON(w, http.StatusForbidden, map[string]string{"error": ErrDuplicateIdentity.Error()})
			return
		}
		h.logger.Warnw("signup failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "signup failed"})
		return
	}
	h.writeJSON(w, http.StatusCreated, pair)
}

func validateSignup(req SignupRequest) error {
	if err := ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	return ValidatePassword(req.Password)
}

// LoginRequest is the wire body for POST /user/login.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.Identifier == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "identifier must not be empty"})
		return
	}
	if n := utf8.RuneCountInString(req.Password); n < minPasswordLen || n > maxPasswordLen {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password must be between 8 and 128 characters"})
		return
	}
	pair, err := h.svc.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		case errors.Is(err, ErrInvalidCredentials):
			h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid credentials"})
		default:
			h.logger.Warnw("login failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, pair)
}

// RefreshRequest is the wire body for POST /user/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrUserNotFound):
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid refresh token"})
		default:
			h.logger.Warnw("refresh failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "refresh failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, pair)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
