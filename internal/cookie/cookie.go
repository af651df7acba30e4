// Package cookie provides the visitor session cookie helpers. All session
// cookies go through this package so domain scoping and security flags stay
// consistent.
package cookie

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie that carries the visitor session ID.
const SessionCookieName = "nerdtech_session"

// Config holds cookie configuration.
type Config struct {
	// BaseDomain scopes cookies to a domain and its subdomains (e.g.
	// "nerdtech.vn"). Empty leaves the cookie host-only.
	BaseDomain string

	// Secure determines whether cookies require HTTPS.
	// Should be true in production, false in development.
	Secure bool
}

// NewConfig creates a new cookie configuration.
//
// Example:
//
//	cfg := cookie.NewConfig("nerdtech.vn", true) // production
//	cfg := cookie.NewConfig("", false)           // development
func NewConfig(baseDomain string, secure bool) *Config {
	return &Config{
		BaseDomain: baseDomain,
		Secure:     secure,
	}
}

func (c *Config) base(name, value string) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.BaseDomain != "" {
		ck.Domain = "." + c.BaseDomain
	}
	return ck
}

// SetSession sets an HttpOnly, SameSite=Lax session cookie that lives for
// maxAge seconds.
func (c *Config) SetSession(w http.ResponseWriter, name, value string, maxAge int) {
	ck := c.base(name, value)
	ck.MaxAge = maxAge
	http.SetCookie(w, ck)
}

// ClearSession removes a session cookie. The domain matches the one used
// when it was set.
func (c *Config) ClearSession(w http.ResponseWriter, name string) {
	ck := c.base(name, "")
	ck.MaxAge = -1
	http.SetCookie(w, ck)
}

// SetSessionWithExpiry sets a session cookie with an explicit expiration
// time instead of a max age.
func (c *Config) SetSessionWithExpiry(w http.ResponseWriter, name, value string, expires time.Time) {
	ck := c.base(name, value)
	ck.Expires = expires
	http.SetCookie(w, ck)
}

// Get retrieves a cookie value from the request.
// Returns empty string if cookie not found.
func Get(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
