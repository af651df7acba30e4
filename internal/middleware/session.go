package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/cookie"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// SessionConfig holds configuration for the visitor session middleware.
type SessionConfig struct {
	// Cookie scopes and secures the session cookie.
	Cookie *cookie.Config

	// CookieName defaults to cookie.SessionCookieName.
	CookieName string

	// TTL is the lifetime of the session cookie.
	TTL time.Duration

	// NewID generates a session ID for visitors without a valid one.
	NewID func() (string, error)

	// ValidID rejects malformed cookie values. Nil accepts any non-empty
	// value.
	ValidID func(string) bool
}

// Session makes sure every request carries a visitor session. Visitors
// without a valid session cookie get a new one. The session ID is stored in
// the context for domain.SessionFromContext.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	if cfg.Cookie == nil {
		panic("session: Cookie config is required")
	}
	if cfg.NewID == nil {
		panic("session: NewID is required")
	}
	if cfg.CookieName == "" {
		cfg.CookieName = cookie.SessionCookieName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := cookie.Get(r, cfg.CookieName)
			if id == "" || (cfg.ValidID != nil && !cfg.ValidID(id)) {
				newID, err := cfg.NewID()
				if err != nil {
					respondInternalError(w, r, err)
					return
				}
				id = newID
				cfg.Cookie.SetSession(w, cfg.CookieName, id, int(cfg.TTL.Seconds()))
			}

			ctx := domain.NewContextWithSession(r.Context(), id)
			ctx = withLogAttrs(ctx, slog.String("session", sessionLogValue(id)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserResolver looks up the user signed in to a session.
type UserResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
}

// WithUser adds the session's signed-in user to the context. It never
// rejects a request: lookup failures are logged and the request continues
// signed out. Must run after Session.
func WithUser(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := domain.SessionFromContext(r.Context())
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.CurrentUser(r.Context(), sessionID)
			if err != nil {
				GetLogger(r.Context()).Warn("failed to load session user", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.NewContextWithUser(r.Context(), user)
			ctx = withLogAttrs(ctx, slog.String("user_id", user.ID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser responds 401 unless a user is signed in.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domain.IsAuthenticated(r.Context()) {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves the signed-in user from the request context.
// Returns nil if no user is authenticated.
func GetUserFromContext(ctx context.Context) *domain.User {
	return domain.UserFromContext(ctx)
}
