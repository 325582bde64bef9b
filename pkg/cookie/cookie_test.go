package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanvault/accesskit/pkg/cookie"
)

func TestManager_SetGet(t *testing.T) {
	t.Parallel()
	mgr := cookie.New()

	w := httptest.NewRecorder()
	mgr.Set(w, "accessToken", "token-value", cookie.WithTTL(time.Hour))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "accessToken", cookies[0].Name)
	assert.Equal(t, "token-value", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookies[0])

	val, err := mgr.Get(r, "accessToken")
	require.NoError(t, err)
	assert.Equal(t, "token-value", val)
}

func TestManager_Get_Missing(t *testing.T) {
	t.Parallel()
	mgr := cookie.New()

	r := httptest.NewRequest("GET", "/", nil)
	_, err := mgr.Get(r, "nope")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	mgr := cookie.New()

	w := httptest.NewRecorder()
	mgr.Delete(w, "accessToken")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "accessToken", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestManager_DefaultOverrides(t *testing.T) {
	t.Parallel()
	mgr := cookie.New(cookie.WithSecure(true), cookie.WithDomain("example.com"))

	w := httptest.NewRecorder()
	mgr.Set(w, "refreshToken", "v", cookie.WithHTTPOnly(false))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, "example.com", cookies[0].Domain)
	assert.False(t, cookies[0].HttpOnly)
}
