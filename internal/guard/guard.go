// Package guard redirects navigations based on whether the request carries
// an auth token cookie. It never looks at the token's contents; the remote
// API is the authority on whether a token is valid.
package guard

import (
	"net/http"
	"net/url"
	"strings"
)

// Decision is the outcome of evaluating one navigation.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToHome:
		return "redirect_home"
	default:
		return "allow"
	}
}

// MatchMode selects how a path is compared with a route pattern.
type MatchMode int

const (
	// MatchPrefix matches the pattern itself and anything below it:
	// "/home" matches "/home" and "/home/recipes" but not "/homepage".
	MatchPrefix MatchMode = iota
	// MatchSubstring matches any path containing the pattern.
	MatchSubstring
)

// ParseMatchMode maps "prefix" and "substring" to a MatchMode.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prefix":
		return MatchPrefix, true
	case "substring":
		return MatchSubstring, true
	default:
		return MatchPrefix, false
	}
}

// Config describes which paths need a token and which forbid one.
type Config struct {
	Protected  []string
	AuthOnly   []string
	LoginPath  string
	HomePath   string
	CookieName string
	Mode       MatchMode

	// OnRedirect, when set, is called for every redirect the guard issues.
	OnRedirect func(r *http.Request, d Decision)
}

// DefaultConfig protects /home and /profile and keeps signed-in users away
// from /login and /register.
func DefaultConfig() Config {
	return Config{
		Protected:  []string{"/home", "/profile"},
		AuthOnly:   []string{"/login", "/register"},
		LoginPath:  "/login",
		HomePath:   "/home",
		CookieName: "authToken",
		Mode:       MatchPrefix,
	}
}

// Guard evaluates navigations against a Config.
type Guard struct {
	cfg Config
}

// New fills unset fields of cfg from DefaultConfig.
func New(cfg Config) *Guard {
	def := DefaultConfig()
	if cfg.Protected == nil {
		cfg.Protected = def.Protected
	}
	if cfg.AuthOnly == nil {
		cfg.AuthOnly = def.AuthOnly
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = def.LoginPath
	}
	if cfg.HomePath == "" {
		cfg.HomePath = def.HomePath
	}
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	return &Guard{cfg: cfg}
}

// Decide classifies path. Protected routes are checked first.
func (g *Guard) Decide(path string, hasToken bool) Decision {
	if !hasToken && g.matchesAny(g.cfg.Protected, path) {
		return RedirectToLogin
	}
	if hasToken && g.matchesAny(g.cfg.AuthOnly, path) {
		return RedirectToHome
	}
	return Allow
}

func (g *Guard) matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if g.matches(p, path) {
			return true
		}
	}
	return false
}

func (g *Guard) matches(pattern, path string) bool {
	if pattern == "" {
		return false
	}
	if g.cfg.Mode == MatchSubstring {
		return strings.Contains(path, pattern)
	}
	if path == pattern {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(pattern, "/")+"/")
}

// Middleware runs the guard before next. On a redirect next is not called.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasToken := TokenFromHeader(r.Header.Get("Cookie"), g.cfg.CookieName)

		d := g.Decide(r.URL.Path, hasToken)
		switch d {
		case RedirectToLogin:
			g.redirect(w, r, d, g.cfg.LoginPath)
		case RedirectToHome:
			g.redirect(w, r, d, g.cfg.HomePath)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (g *Guard) redirect(w http.ResponseWriter, r *http.Request, d Decision, target string) {
	if g.cfg.OnRedirect != nil {
		g.cfg.OnRedirect(r, d)
	}
	// a form post must not be replayed against the redirect target
	code := http.StatusTemporaryRedirect
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		code = http.StatusSeeOther
	}
	http.Redirect(w, r, target, code)
}

// TokenFromHeader extracts name from a raw Cookie header. It is lenient:
// malformed pairs are skipped rather than failing the whole header, and the
// first occurrence of name wins. An empty or undecodable value counts as
// absent, the same as the session's cookie jar reads it.
func TokenFromHeader(header, name string) (string, bool) {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		eq := strings.IndexByte(part, '=')
		if eq <= 0 {
			continue
		}
		if strings.TrimSpace(part[:eq]) != name {
			continue
		}

		raw := strings.TrimSpace(part[eq+1:])
		raw = strings.Trim(raw, `"`)
		value, err := url.QueryUnescape(raw)
		if err != nil || value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}
