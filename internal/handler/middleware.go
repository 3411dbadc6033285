package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type contextKey string

// usernameKey holds the authenticated username in the request context.
const usernameKey contextKey = "username"

// TokenValidator is the piece of the token service the middleware needs.
type TokenValidator interface {
	Validate(tokenString string) (string, error)
}

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// Authenticator enforces the "logged in" policy: a valid bearer token is
// required and the username it carries becomes the acting identity.
func Authenticator(validator TokenValidator, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			authHeader := r.Header.Get("Authorization")
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = parts[1]
			}

			if tokenString == "" {
				respondWithError(w, http.StatusUnauthorized, "missing authentication token", logger)
				return
			}

			username, err := validator.Validate(tokenString)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "invalid authentication token", logger)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSameUser enforces the "correct user" policy: the acting identity
// must equal the {username} route parameter. Runs after Authenticator.
func RequireSameUser(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := UsernameFromContext(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "missing authentication token", logger)
				return
			}

			if actor != chi.URLParam(r, "username") {
				respondWithError(w, http.StatusForbidden, "not permitted", logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UsernameFromContext returns the authenticated username set by Authenticator.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
