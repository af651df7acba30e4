package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSetSession(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		wantDomain string
	}{
		{name: "host-only in development", cfg: NewConfig("", false)},
		{name: "scoped to base domain", cfg: NewConfig("nerdtech.vn", true), wantDomain: "nerdtech.vn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.cfg.SetSession(rec, SessionCookieName, "abc", 3600)

			ck := responseCookie(t, rec)
			assert.Equal(t, SessionCookieName, ck.Name)
			assert.Equal(t, "abc", ck.Value)
			assert.Equal(t, "/", ck.Path)
			assert.Equal(t, 3600, ck.MaxAge)
			assert.True(t, ck.HttpOnly)
			assert.Equal(t, tt.cfg.Secure, ck.Secure)
			assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
			assert.Equal(t, tt.wantDomain, ck.Domain)
		})
	}
}

func TestClearSession(t *testing.T) {
	rec := httptest.NewRecorder()
	NewConfig("nerdtech.vn", true).ClearSession(rec, SessionCookieName)

	ck := responseCookie(t, rec)
	assert.Empty(t, ck.Value)
	assert.Equal(t, -1, ck.MaxAge)
	assert.Equal(t, "nerdtech.vn", ck.Domain)
}

func TestSetSessionWithExpiry(t *testing.T) {
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	rec := httptest.NewRecorder()
	NewConfig("", false).SetSessionWithExpiry(rec, SessionCookieName, "abc", expires)

	ck := responseCookie(t, rec)
	assert.True(t, ck.Expires.Equal(expires))
	assert.Zero(t, ck.MaxAge)
}

func TestGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, Get(req, SessionCookieName))

	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	assert.Equal(t, "abc", Get(req, SessionCookieName))
}
