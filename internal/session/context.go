package session

import (
	"context"
	"net/http"

	"foodRecipesWebsite/internal/cookies"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying h.
func NewContext(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, contextKey{}, h)
}

// FromContext returns the handle installed by Middleware. Calling it on a
// context without one is a programming error and panics.
func FromContext(ctx context.Context) *Handle {
	h, ok := ctx.Value(contextKey{}).(*Handle)
	if !ok || h == nil {
		panic("session: FromContext called outside the session middleware")
	}
	return h
}

// Options configures Middleware.
type Options struct {
	TTL     int
	Cookies cookies.Options
}

// Middleware hydrates a handle for every request and installs it in the
// request context.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jar := cookies.NewJar(w, r, opts.Cookies)
			h := New(jar, opts.TTL)
			h.Hydrate()

			ctx := NewContext(r.Context(), h)
			ctx = cookies.NewContext(ctx, jar)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
