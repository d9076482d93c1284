package auth

import (
	"net/http"
	"time"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "auth_token"

// CookieWriter sets and clears the session cookie with fixed attributes:
// http-only, same-site lax, path "/". The Secure flag follows the deployment
// environment.
type CookieWriter struct {
	secure bool
	maxAge time.Duration
}

// NewCookieWriter builds a writer; secure should be true in production.
func NewCookieWriter(secure bool, maxAge time.Duration) *CookieWriter {
	return &CookieWriter{secure: secure, maxAge: maxAge}
}

// Attach sets the session cookie on the response.
func (c *CookieWriter) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.maxAge.Seconds()),
	})
}

// Clear overwrites the session cookie with an immediately expiring one.
func (c *CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// ReadToken pulls the session token from the request cookie, if any.
func ReadToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
