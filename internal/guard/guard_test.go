package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_Decide(t *testing.T) {
	g := New(Config{})

	tests := []struct {
		name     string
		path     string
		hasToken bool
		want     Decision
	}{
		{name: "home without token", path: "/home", want: RedirectToLogin},
		{name: "nested home without token", path: "/home/recipes/3/delete", want: RedirectToLogin},
		{name: "profile without token", path: "/profile", want: RedirectToLogin},
		{name: "home with token", path: "/home", hasToken: true, want: Allow},
		{name: "login with token", path: "/login", hasToken: true, want: RedirectToHome},
		{name: "register with token", path: "/register", hasToken: true, want: RedirectToHome},
		{name: "login without token", path: "/login", want: Allow},
		{name: "register without token", path: "/register", want: Allow},
		{name: "root without token", path: "/", want: Allow},
		{name: "root with token", path: "/", hasToken: true, want: Allow},
		{name: "logout with token", path: "/logout", hasToken: true, want: Allow},
		{name: "lookalike path is not protected", path: "/homepage", want: Allow},
		{name: "lookalike path is not auth-only", path: "/loginhelp", hasToken: true, want: Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Decide(tt.path, tt.hasToken))
		})
	}
}

func TestGuard_SubstringMode(t *testing.T) {
	g := New(Config{Mode: MatchSubstring})

	assert.Equal(t, RedirectToLogin, g.Decide("/homepage", false))
	assert.Equal(t, RedirectToLogin, g.Decide("/my/profile/edit", false))
	assert.Equal(t, RedirectToHome, g.Decide("/user-register", true))
	assert.Equal(t, Allow, g.Decide("/recipes", false))
}

func TestGuard_MiddlewareRedirectsBeforeHandler(t *testing.T) {
	var redirects []Decision
	g := New(Config{OnRedirect: func(_ *http.Request, d Decision) { redirects = append(redirects, d) }})

	tests := []struct {
		name       string
		path       string
		cookie     string
		wantStatus int
		wantTarget string
		wantServed bool
	}{
		{name: "protected anonymous", path: "/home", wantStatus: http.StatusTemporaryRedirect, wantTarget: "/login"},
		{name: "auth-only signed in", path: "/register", cookie: "authToken=abc", wantStatus: http.StatusTemporaryRedirect, wantTarget: "/home"},
		{name: "protected signed in", path: "/profile", cookie: "theme=dark; authToken=abc", wantStatus: http.StatusOK, wantServed: true},
		{name: "unrestricted anonymous", path: "/static/app.css", wantStatus: http.StatusOK, wantServed: true},
		{name: "empty token is absent", path: "/home", cookie: "authToken=", wantStatus: http.StatusTemporaryRedirect, wantTarget: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			served := false
			h := g.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				served = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantServed, served)
			if tt.wantTarget != "" {
				assert.Equal(t, tt.wantTarget, rec.Header().Get("Location"))
			}
		})
	}

	assert.Equal(t, []Decision{RedirectToLogin, RedirectToHome, RedirectToLogin}, redirects)
}

func TestGuard_MiddlewareFormPostRedirect(t *testing.T) {
	g := New(DefaultConfig())
	h := g.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/home/recipes", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "authToken=abc", want: "abc", ok: true},
		{header: "a=1;  authToken=x%20y ; b=2", want: "x y", ok: true},
		{header: `authToken="quoted"`, want: "quoted", ok: true},
		{header: "garbage; authToken=abc", want: "abc", ok: true},
		{header: "authToken=first; authToken=second", want: "first", ok: true},
		{header: "xauthToken=abc", ok: false},
		{header: "authToken=", ok: false},
		{header: "authToken=%zz", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := TokenFromHeader(tt.header, "authToken")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMatchMode(t *testing.T) {
	m, ok := ParseMatchMode("SUBSTRING")
	assert.True(t, ok)
	assert.Equal(t, MatchSubstring, m)

	m, ok = ParseMatchMode("")
	assert.True(t, ok)
	assert.Equal(t, MatchPrefix, m)

	_, ok = ParseMatchMode("regex")
	assert.False(t, ok)
}
