package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/eduvox/service-core-go/internal/practice"
	"github.com/eduvox/service-core-go/internal/token"
	"github.com/eduvox/service-core-go/internal/user"
	userrepo "github.com/eduvox/service-core-go/internal/user/repo"
	"github.com/eduvox/service-core-go/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// RequestIDMiddleware tags each request with an X-Request-Id (KSUID) unless
// the caller already supplied one.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = utilities.NewRequestID()
				r.Header.Set("X-Request-Id", id)
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"request_id", r.Header.Get("X-Request-Id"),
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Clickjacking protection
			w.Header().Set("X-Frame-Options", "DENY")

			// Referrer policy
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")

			// HSTS only over TLS
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware reflects the request origin and allows credentials, the
// policy the frontend dev setup expects. Preflight requests are answered
// here with 204.
func CORSMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware requires a valid Bearer access token and stores its claims
// on the request context.
func AuthMiddleware(issuer *token.Issuer, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			claims, err := issuer.Parse(strings.TrimSpace(auth[len("bearer "):]))
			if err != nil {
				logger.Debugw("rejected access token", "err", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(token.NewContext(r.Context(), claims)))
		})
	}
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, issuer *token.Issuer) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// user routes — the paths are the frontend's wire contract
	userSvc := user.NewUserService(userrepo.NewUserRepo(db), issuer, nil, logger)
	userHandler := user.NewHandler(userSvc, logger)
	mux.HandleFunc("POST /user/create", userHandler.Signup)
	mux.HandleFunc("POST /user/login", userHandler.Login)
	mux.HandleFunc("POST /user/refresh", userHandler.Refresh)

	// practice routes, behind bearer auth
	practiceHandler := practice.NewHandler(practice.NewService(nil), logger)
	requireAuth := AuthMiddleware(issuer, logger)
	mux.Handle("GET /practice/debate/topics", requireAuth(http.HandlerFunc(practiceHandler.DebateTopics)))
	mux.Handle("POST /practice/debate/respond", requireAuth(http.HandlerFunc(practiceHandler.DebateRespond)))
	mux.Handle("POST /practice/debate/report", requireAuth(http.HandlerFunc(practiceHandler.DebateReport)))
	mux.Handle("GET /practice/extempore/topic", requireAuth(http.HandlerFunc(practiceHandler.ExtemporeTopic)))
	mux.Handle("POST /practice/extempore/report", requireAuth(http.HandlerFunc(practiceHandler.ExtemporeReport)))
	mux.Handle("POST /practice/interview/report", requireAuth(http.HandlerFunc(practiceHandler.InterviewReport)))

	// middleware chain: request id -> logging -> security headers -> cors
	handler := RequestIDMiddleware()(LoggingMiddleware(logger)(SecurityHeadersMiddleware()(CORSMiddleware()(mux))))
	return handler
}
