package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sclub/calendar/internal/auth"
	"github.com/sclub/calendar/internal/cache"
	"github.com/sclub/calendar/internal/model"
	"github.com/sclub/calendar/internal/repository"
)

// UserSource resolves a token subject to a user record.
// *repository.Repository satisfies it.
type UserSource interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens *auth.TokenService
	Users  UserSource
	Cache  *cache.Cache
}

// Auth returns a middleware that authenticates requests.
// It extracts the bearer token from the Authorization header, validates it,
// resolves the subject to a user, and injects the identity into the request
// context. No protected handler runs without a resolved identity.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			subject, err := cfg.Tokens.Validate(token)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "invalid_token")
				writeAuthError(w)
				return
			}

			// Cache first; a miss (or disabled cache) falls through to the DB.
			user, _ := cfg.Cache.GetUser(r.Context(), subject)
			if user == nil {
				user, err = cfg.Users.GetUserByID(r.Context(), subject)
				if err != nil {
					if errors.Is(err, repository.ErrUserNotFound) {
						// Valid signature but the subject no longer exists,
						// e.g. deleted after issuance.
						logAuthFailure(cfg.Logger, r, "unknown_subject")
					} else {
						cfg.Logger.Error("database error during auth",
							slog.String("error", err.Error()),
							slog.String("request_id", GetRequestID(r.Context())),
						)
					}
					writeAuthError(w)
					return
				}
				_ = cfg.Cache.SetUser(r.Context(), user)
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns a middleware that rejects non-admin identities with
// 403. Must be applied after Auth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := auth.UserFromContext(r.Context())
			if err := auth.RequireAdmin(user); err != nil {
				writeForbiddenError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken extracts the token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Could not validate credentials","code":"UNAUTHENTICATED"}`))
}

// writeForbiddenError writes a 403 Forbidden response.
func writeForbiddenError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"Admin privileges required","code":"FORBIDDEN"}`))
}
