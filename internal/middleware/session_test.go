package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/cookie"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/domain"
)

// =============================================================================
// MOCK USER RESOLVER
// =============================================================================

type mockUserResolver struct {
	currentUserFunc func(ctx context.Context, sessionID string) (*domain.User, error)
}

func (m *mockUserResolver) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if m.currentUserFunc != nil {
		return m.currentUserFunc(ctx, sessionID)
	}
	return nil, nil
}

func testSessionConfig() SessionConfig {
	return SessionConfig{
		Cookie:  cookie.NewConfig("", false),
		TTL:     time.Hour,
		NewID:   func() (string, error) { return "fresh-session", nil },
		ValidID: func(id string) bool { return len(id) > 5 },
	}
}

// sessionEcho writes the session ID from the context as the body.
var sessionEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(domain.SessionFromContext(r.Context())))
})

func TestSession(t *testing.T) {
	t.Run("issues a session to new visitors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
		rec := httptest.NewRecorder()

		Session(testSessionConfig())(sessionEcho).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fresh-session", rec.Body.String())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, cookie.SessionCookieName, cookies[0].Name)
		assert.Equal(t, "fresh-session", cookies[0].Value)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("keeps a valid existing session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
		req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: "existing-session"})
		rec := httptest.NewRecorder()

		Session(testSessionConfig())(sessionEcho).ServeHTTP(rec, req)

		assert.Equal(t, "existing-session", rec.Body.String())
		assert.Empty(t, rec.Result().Cookies(), "no cookie is re-issued")
	})

	t.Run("replaces a malformed session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
		req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: "bad"})
		rec := httptest.NewRecorder()

		Session(testSessionConfig())(sessionEcho).ServeHTTP(rec, req)

		assert.Equal(t, "fresh-session", rec.Body.String())
		require.Len(t, rec.Result().Cookies(), 1)
	})

	t.Run("id generation failure is a 500", func(t *testing.T) {
		cfg := testSessionConfig()
		cfg.NewID = func() (string, error) { return "", errors.New("entropy exhausted") }

		req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
		rec := httptest.NewRecorder()

		Session(cfg)(sessionEcho).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("panics without cookie config", func(t *testing.T) {
		cfg := testSessionConfig()
		cfg.Cookie = nil
		assert.Panics(t, func() { Session(cfg) })
	})
}

func TestWithUser(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Name: "Lan", Email: "lan@example.com"}

	userEcho := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := GetUserFromContext(r.Context()); u != nil {
			_, _ = w.Write([]byte(u.Email))
			return
		}
		_, _ = w.Write([]byte("anonymous"))
	})

	tests := []struct {
		name      string
		sessionID string
		resolver  *mockUserResolver
		want      string
	}{
		{
			name:      "signed in",
			sessionID: "sess-1",
			resolver: &mockUserResolver{currentUserFunc: func(ctx context.Context, sessionID string) (*domain.User, error) {
				if sessionID == "sess-1" {
					return user, nil
				}
				return nil, nil
			}},
			want: "lan@example.com",
		},
		{
			name:      "signed out",
			sessionID: "sess-2",
			resolver:  &mockUserResolver{},
			want:      "anonymous",
		},
		{
			name:      "lookup error continues anonymously",
			sessionID: "sess-3",
			resolver: &mockUserResolver{currentUserFunc: func(ctx context.Context, sessionID string) (*domain.User, error) {
				return nil, errors.New("store down")
			}},
			want: "anonymous",
		},
		{
			name:     "no session",
			resolver: &mockUserResolver{currentUserFunc: func(ctx context.Context, sessionID string) (*domain.User, error) {
				t.Fatal("resolver must not be called without a session")
				return nil, nil
			}},
			want: "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
			if tt.sessionID != "" {
				req = req.WithContext(domain.NewContextWithSession(req.Context(), tt.sessionID))
			}
			rec := httptest.NewRecorder()

			WithUser(tt.resolver)(userEcho).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRequireUser(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("anonymous gets 401 json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
		rec := httptest.NewRecorder()

		RequireUser(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, rec.Body.String(), domain.EUNAUTHORIZED)
	})

	t.Run("signed in passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
		req = req.WithContext(domain.NewContextWithUser(req.Context(), &domain.User{ID: uuid.New()}))
		rec := httptest.NewRecorder()

		RequireUser(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
