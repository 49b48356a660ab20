// Package session holds the signed-in user's token and profile for one
// request, mirrored to the authToken and authUser cookies.
package session

import (
	"encoding/json"
	"errors"
	"sync"

	"foodRecipesWebsite/internal/cookies"
	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/models"
)

const (
	TokenCookie = "authToken"
	UserCookie  = "authUser"

	// DefaultTTL is the lifetime of both session cookies, in seconds.
	DefaultTTL = 60 * 60 * 24
)

var ErrEmptyToken = errors.New("session: token must not be empty")

// Session is the tagged state of a handle: Anonymous or Authenticated.
type Session interface {
	isSession()
}

// Anonymous is the state without a token.
type Anonymous struct{}

// Authenticated carries the token and, when one was stored, the user.
type Authenticated struct {
	Token string
	User  *models.User
}

func (Anonymous) isSession()     {}
func (Authenticated) isSession() {}

// Handle owns the session of one request. It starts loading, is hydrated
// once from the cookie jar, and writes every change back to the jar.
type Handle struct {
	jar *cookies.Jar
	ttl int

	once    sync.Once
	mu      sync.RWMutex
	loading bool
	token   string
	user    *models.User
}

// New returns an unhydrated handle over jar. ttl <= 0 selects DefaultTTL.
func New(jar *cookies.Jar, ttl int) *Handle {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Handle{jar: jar, ttl: ttl, loading: true}
}

// Hydrate adopts the stored token and user. Only the first call has any
// effect. A stored user that is not valid JSON is dropped.
func (h *Handle) Hydrate() {
	h.once.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if token, ok := h.jar.Get(TokenCookie); ok {
			h.token = token
		}

		if raw, ok := h.jar.Get(UserCookie); ok {
			var u models.User
			if err := json.Unmarshal([]byte(raw), &u); err != nil {
				logger.Log.WithError(err).Warn("Discarding unreadable stored user")
				h.jar.Delete(UserCookie)
			} else {
				h.user = &u
			}
		}

		h.loading = false
	})
}

// IsLoading reports whether hydration has not completed yet.
func (h *Handle) IsLoading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

// Token returns the current token. It satisfies api.TokenSource.
func (h *Handle) Token() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token, h.token != ""
}

// User returns a copy of the current user.
func (h *Handle) User() (*models.User, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return nil, false
	}
	u := *h.user
	return &u, true
}

// Authenticated reports whether a token is present.
func (h *Handle) Authenticated() bool {
	_, ok := h.Token()
	return ok
}

// Snapshot returns the current state as a tagged value.
func (h *Handle) Snapshot() Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.token == "" {
		return Anonymous{}
	}
	var u *models.User
	if h.user != nil {
		cp := *h.user
		u = &cp
	}
	return Authenticated{Token: h.token, User: u}
}

// SetToken replaces the token; "" clears it and deletes its cookie.
func (h *Handle) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.setTokenLocked(token)
}

// SetUser replaces the user; nil clears it and deletes its cookie.
func (h *Handle) SetUser(u *models.User) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.setUserLocked(u)
}

// Login sets token and user together.
func (h *Handle) Login(token string, u models.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.setUserLocked(&u); err != nil {
		return err
	}
	h.setTokenLocked(token)
	return nil
}

// Logout clears token and user together.
func (h *Handle) Logout() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.setTokenLocked("")
	_ = h.setUserLocked(nil)
}

func (h *Handle) setTokenLocked(token string) {
	h.token = token
	if token == "" {
		h.jar.Delete(TokenCookie)
		return
	}
	h.jar.Set(TokenCookie, token, h.ttl)
}

func (h *Handle) setUserLocked(u *models.User) error {
	if u == nil {
		h.user = nil
		h.jar.Delete(UserCookie)
		return nil
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}

	cp := *u
	h.user = &cp
	h.jar.Set(UserCookie, string(raw), h.ttl)
	return nil
}
