package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	require.NotNil(t, found, "cookie %s was not written", name)
	return found
}

func TestJar_SetWritesScopedEncodedCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	jar := NewJar(rec, req, Options{Secure: true})

	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jar.now = func() time.Time { return fixed }

	jar.Set("authUser", `{"first_name":"Ann Lee"}`, 60*60*24)

	c := findCookie(t, rec, "authUser")
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 86400, c.MaxAge)
	assert.Equal(t, fixed.Add(24*time.Hour), c.Expires)
	assert.NotContains(t, c.Value, " ")
	assert.NotContains(t, c.Value, `"`)
}

func TestJar_SessionTTLHasNoExpiry(t *testing.T) {
	rec := httptest.NewRecorder()
	jar := NewJar(rec, httptest.NewRequest(http.MethodGet, "/", nil), Options{})

	jar.Set("authToken", "abc", SessionTTL)

	c := findCookie(t, rec, "authToken")
	assert.True(t, c.Expires.IsZero())
	assert.Equal(t, 0, c.MaxAge)
}

func TestJar_GetDecodesRequestCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "authUser", Value: "%7B%22id%22%3A1%7D"})
	jar := NewJar(httptest.NewRecorder(), req, Options{})

	v, ok := jar.Get("authUser")
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)

	_, ok = jar.Get("missing")
	assert.False(t, ok)
}

func TestJar_GetTreatsEmptyAndUndecodableAsAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "empty=; broken=%zz")
	jar := NewJar(httptest.NewRecorder(), req, Options{})

	_, ok := jar.Get("empty")
	assert.False(t, ok)
	_, ok = jar.Get("broken")
	assert.False(t, ok)
}

func TestJar_ReadsOwnWrites(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: "old"})
	jar := NewJar(httptest.NewRecorder(), req, Options{})

	jar.Set("authToken", "new", 60)
	v, ok := jar.Get("authToken")
	assert.True(t, ok)
	assert.Equal(t, "new", v)

	jar.Delete("authToken")
	_, ok = jar.Get("authToken")
	assert.False(t, ok)
}

func TestJar_DeleteExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	jar := NewJar(rec, httptest.NewRequest(http.MethodGet, "/", nil), Options{})

	jar.Delete("authToken")

	c := findCookie(t, rec, "authToken")
	assert.Equal(t, "", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Expires.Before(time.Unix(1, 0)))
}

func TestJar_ClearAllDeletesEveryVisibleCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: "t"})
	req.AddCookie(&http.Cookie{Name: "authUser", Value: "u"})
	jar := NewJar(rec, req, Options{})
	jar.Set("flash", "hello", SessionTTL)

	jar.ClearAll()

	deleted := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			deleted[c.Name] = true
		}
	}
	assert.True(t, deleted["authToken"])
	assert.True(t, deleted["authUser"])
	assert.True(t, deleted["flash"])
	assert.Empty(t, jar.Names())
}

func TestJar_DetachedIsNoop(t *testing.T) {
	var nilJar *Jar
	nilJar.Set("a", "b", 10)
	nilJar.Delete("a")
	nilJar.ClearAll()
	_, ok := nilJar.Get("a")
	assert.False(t, ok)

	detached := NewJar(nil, nil, Options{})
	detached.Set("a", "b", 10)
	_, ok = detached.Get("a")
	assert.False(t, ok)
	assert.Nil(t, detached.Names())
}
