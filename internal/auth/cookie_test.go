package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieWriter_Attach(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	NewCookieWriter(true, 7*24*time.Hour).Attach(w, "tok-123")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok-123", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int(7*24*time.Hour/time.Second), c.MaxAge)
}

func TestCookieWriter_Clear(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	NewCookieWriter(false, time.Hour).Clear(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestReadToken(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	_, ok := ReadToken(r)
	assert.False(t, ok)

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok-456"})
	token, ok := ReadToken(r)
	assert.True(t, ok)
	assert.Equal(t, "tok-456", token)
}
