package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSRF(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name        string
		cfg         CSRFConfig
		method      string
		path        string
		body        string
		contentType string
		origin      string
		want        int
	}{
		{name: "get passes", method: http.MethodGet, path: "/api/cart", want: http.StatusNoContent},
		{name: "json post passes", method: http.MethodPost, path: "/api/cart/items", body: `{"productId":1}`, contentType: "application/json; charset=utf-8", want: http.StatusNoContent},
		{name: "form post rejected", method: http.MethodPost, path: "/api/cart/items", body: "productId=1", contentType: "application/x-www-form-urlencoded", want: http.StatusBadRequest},
		{name: "text plain rejected", method: http.MethodPost, path: "/api/checkout", body: "{}", contentType: "text/plain", want: http.StatusBadRequest},
		{name: "bodyless delete passes", method: http.MethodDelete, path: "/api/cart", want: http.StatusNoContent},
		{name: "same host origin passes", method: http.MethodPost, path: "/api/cart/items", body: "{}", contentType: "application/json", origin: "http://example.com", want: http.StatusNoContent},
		{name: "foreign origin rejected", method: http.MethodPost, path: "/api/cart/items", body: "{}", contentType: "application/json", origin: "https://evil.test", want: http.StatusForbidden},
		{
			name:   "allowed origin passes",
			cfg:    CSRFConfig{AllowedOrigins: []string{"https://shop.nerdtech.vn/"}},
			method: http.MethodPost, path: "/api/cart/items", body: "{}", contentType: "application/json",
			origin: "https://shop.nerdtech.vn",
			want:   http.StatusNoContent,
		},
		{
			name:   "skip path",
			cfg:    CSRFConfig{SkipPaths: []string{"/hooks/"}},
			method: http.MethodPost, path: "/hooks/catalog", body: "x", contentType: "text/plain",
			want: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CSRF(tt.cfg)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestMatchesPathPrefix(t *testing.T) {
	assert.True(t, matchesPathPrefix("/hooks/x", "/hooks/"))
	assert.True(t, matchesPathPrefix("/hooks", "/hooks"))
	assert.True(t, matchesPathPrefix("/hooks/x", "/hooks"))
	assert.False(t, matchesPathPrefix("/hooks-evil", "/hooks"))
	assert.False(t, matchesPathPrefix("/api", "/hooks"))
}
