package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodRecipesWebsite/internal/cookies"
	"foodRecipesWebsite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextRequest builds the request a browser would send after receiving rec.
func nextRequest(prev *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	jar := map[string]string{}
	var order []string
	for _, c := range prev.Cookies() {
		if _, ok := jar[c.Name]; !ok {
			order = append(order, c.Name)
		}
		jar[c.Name] = c.Value
	}
	for _, c := range rec.Result().Cookies() {
		if _, ok := jar[c.Name]; !ok {
			order = append(order, c.Name)
		}
		if c.MaxAge < 0 || c.Value == "" {
			delete(jar, c.Name)
			continue
		}
		jar[c.Name] = c.Value
	}

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	for _, name := range order {
		if v, ok := jar[name]; ok {
			req.AddCookie(&http.Cookie{Name: name, Value: v})
		}
	}
	return req
}

func hydrated(req *http.Request) (*Handle, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	h := New(cookies.NewJar(rec, req, cookies.Options{}), 0)
	h.Hydrate()
	return h, rec
}

var ann = models.User{ID: 1, FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Country: "Chile"}

func TestHandle_StartsLoadingUntilHydrated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h := New(cookies.NewJar(httptest.NewRecorder(), req, cookies.Options{}), 0)

	assert.True(t, h.IsLoading())
	h.Hydrate()
	assert.False(t, h.IsLoading())
	assert.Equal(t, Anonymous{}, h.Snapshot())
}

func TestHandle_TokenRoundTrip(t *testing.T) {
	first := httptest.NewRequest(http.MethodGet, "/", nil)
	h, rec := hydrated(first)
	h.SetToken("abc")

	second := nextRequest(first, rec)
	h2, rec2 := hydrated(second)
	token, ok := h2.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	h2.SetToken("")
	third := nextRequest(second, rec2)
	h3, _ := hydrated(third)
	_, ok = h3.Token()
	assert.False(t, ok)
}

func TestHandle_UserRoundTrip(t *testing.T) {
	first := httptest.NewRequest(http.MethodGet, "/", nil)
	h, rec := hydrated(first)
	require.NoError(t, h.SetUser(&ann))

	h2, _ := hydrated(nextRequest(first, rec))
	u, ok := h2.User()
	require.True(t, ok)
	assert.Equal(t, ann, *u)
}

func TestHandle_CorruptStoredUserIsDropped(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "abc"})
	req.AddCookie(&http.Cookie{Name: UserCookie, Value: "%7Bnot-json"})

	var h *Handle
	var rec *httptest.ResponseRecorder
	require.NotPanics(t, func() { h, rec = hydrated(req) })

	_, ok := h.User()
	assert.False(t, ok)
	assert.False(t, h.IsLoading())

	snap, isAuth := h.Snapshot().(Authenticated)
	require.True(t, isAuth)
	assert.Equal(t, "abc", snap.Token)
	assert.Nil(t, snap.User)

	var deleted bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == UserCookie && c.MaxAge < 0 {
			deleted = true
		}
	}
	assert.True(t, deleted)
}

func TestHandle_HydrateRunsOnce(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "abc"})
	h, _ := hydrated(req)

	h.SetToken("changed")
	h.Hydrate()

	token, _ := h.Token()
	assert.Equal(t, "changed", token)
}

func TestHandle_LoginAndLogoutMoveBothFields(t *testing.T) {
	first := httptest.NewRequest(http.MethodGet, "/login", nil)
	h, rec := hydrated(first)

	require.NoError(t, h.Login("T1", ann))
	snap, ok := h.Snapshot().(Authenticated)
	require.True(t, ok)
	assert.Equal(t, "T1", snap.Token)
	assert.Equal(t, ann, *snap.User)

	second := nextRequest(first, rec)
	h2, rec2 := hydrated(second)
	assert.True(t, h2.Authenticated())
	u, ok := h2.User()
	require.True(t, ok)
	assert.Equal(t, 1, u.ID)

	h2.Logout()
	assert.Equal(t, Anonymous{}, h2.Snapshot())
	_, ok = h2.User()
	assert.False(t, ok)

	h3, _ := hydrated(nextRequest(second, rec2))
	assert.Equal(t, Anonymous{}, h3.Snapshot())
	_, ok = h3.User()
	assert.False(t, ok)
}

func TestHandle_LoginRejectsEmptyToken(t *testing.T) {
	h, rec := hydrated(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, h.Login("", ann), ErrEmptyToken)
	assert.Equal(t, Anonymous{}, h.Snapshot())
	assert.Empty(t, rec.Result().Cookies())
}

func TestHandle_UserIsCopied(t *testing.T) {
	h, _ := hydrated(httptest.NewRequest(http.MethodGet, "/", nil))
	u := ann
	require.NoError(t, h.SetUser(&u))

	u.FirstName = "Mutated"
	got, _ := h.User()
	assert.Equal(t, "Ann", got.FirstName)

	got.FirstName = "Also mutated"
	again, _ := h.User()
	assert.Equal(t, "Ann", again.FirstName)
}

func TestFromContext_PanicsOutsideMiddleware(t *testing.T) {
	assert.Panics(t, func() { FromContext(context.Background()) })
}

func TestMiddleware_InstallsHydratedHandle(t *testing.T) {
	var seen *Handle
	handler := Middleware(Options{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		cookies.FromContext(r.Context()).Set("probe", "1", cookies.SessionTTL)
	}))

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "abc"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.False(t, seen.IsLoading())
	token, _ := seen.Token()
	assert.Equal(t, "abc", token)

	var probed bool
	for _, c := range rec.Result().Cookies() {
		probed = probed || c.Name == "probe"
	}
	assert.True(t, probed)
}
