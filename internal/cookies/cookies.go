// Package cookies reads and writes the site's string cookies for one request.
package cookies

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// SessionTTL makes Set issue a session cookie without an explicit expiry.
const SessionTTL = -1

// Options controls the attributes of every cookie a Jar writes.
type Options struct {
	Secure bool
}

// Jar is the cookie jar seen by a single request. Reads observe writes made
// earlier in the same request, the way document.cookie does in a browser.
// A Jar without a request or writer ignores writes and reads nothing.
type Jar struct {
	w       http.ResponseWriter
	r       *http.Request
	opts    Options
	pending map[string]*string // nil value marks a deletion
	now     func() time.Time
}

// NewJar creates a jar over the request's Cookie header and the response's
// Set-Cookie headers.
func NewJar(w http.ResponseWriter, r *http.Request, opts Options) *Jar {
	return &Jar{
		w:       w,
		r:       r,
		opts:    opts,
		pending: make(map[string]*string),
		now:     time.Now,
	}
}

func (j *Jar) detached() bool {
	return j == nil || j.w == nil || j.r == nil
}

// Set writes name=value with Path=/ and SameSite=Strict. ttlSeconds is the
// lifetime; SessionTTL leaves the expiry unset.
func (j *Jar) Set(name, value string, ttlSeconds int) {
	if j.detached() || name == "" {
		return
	}

	c := j.cookie(name, url.QueryEscape(value))
	if ttlSeconds != SessionTTL {
		c.Expires = j.now().Add(time.Duration(ttlSeconds) * time.Second).UTC()
		c.MaxAge = ttlSeconds
		if ttlSeconds <= 0 {
			c.MaxAge = -1
		}
	}

	http.SetCookie(j.w, c)

	v := value
	j.pending[name] = &v
	if ttlSeconds != SessionTTL && ttlSeconds <= 0 {
		j.pending[name] = nil
	}
}

// Get returns the decoded value of name. Missing, empty and undecodable
// cookies are reported as absent.
func (j *Jar) Get(name string) (string, bool) {
	if j.detached() || name == "" {
		return "", false
	}

	if v, ok := j.pending[name]; ok {
		if v == nil || *v == "" {
			return "", false
		}
		return *v, true
	}

	c, err := j.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}

	value, err := url.QueryUnescape(c.Value)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Delete overwrites name with an empty cookie that expired at the epoch.
func (j *Jar) Delete(name string) {
	if j.detached() || name == "" {
		return
	}

	c := j.cookie(name, "")
	c.Expires = time.Unix(0, 0).UTC()
	c.MaxAge = -1
	http.SetCookie(j.w, c)

	j.pending[name] = nil
}

// ClearAll deletes every cookie the request carried and every cookie set
// during this request.
func (j *Jar) ClearAll() {
	if j.detached() {
		return
	}

	for _, name := range j.Names() {
		j.Delete(name)
	}
}

// Names lists the cookie names currently visible to this request.
func (j *Jar) Names() []string {
	if j.detached() {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, c := range j.r.Cookies() {
		if c.Name == "" || seen[c.Name] {
			continue
		}
		if v, ok := j.pending[c.Name]; ok && v == nil {
			continue
		}
		seen[c.Name] = true
		names = append(names, c.Name)
	}
	for name, v := range j.pending {
		if v == nil || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func (j *Jar) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   j.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying jar.
func NewContext(ctx context.Context, jar *Jar) context.Context {
	return context.WithValue(ctx, contextKey{}, jar)
}

// FromContext returns the jar stored in ctx, or a detached jar.
func FromContext(ctx context.Context) *Jar {
	if jar, ok := ctx.Value(contextKey{}).(*Jar); ok {
		return jar
	}
	return NewJar(nil, nil, Options{})
}
