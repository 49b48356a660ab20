package main

import (
	"net/http"

	"foodRecipesWebsite/internal/logger"

	"github.com/gorilla/sessions"
)

const flashSessionName = "flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next page render.
type Flash struct {
	Kind    string
	Message string
}

// NewFlashStore creates the signed cookie store that carries flash messages
// across a redirect.
func NewFlashStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
	return store
}

// addFlash queues a message for the next page.
func (app *App) addFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	sess, err := app.FlashStore.Get(r, flashSessionName)
	if err != nil {
		// a tampered or stale cookie still yields a usable empty session
		logger.Log.WithError(err).Debug("Discarding unreadable flash cookie")
	}

	sess.AddFlash(message, kind)
	if err := sess.Save(r, w); err != nil {
		logger.Log.WithError(err).Warn("Failed to save flash message")
	}
}

// popFlashes returns and clears the queued messages.
func (app *App) popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := app.FlashStore.Get(r, flashSessionName)
	if err != nil || sess.IsNew {
		return nil
	}

	var flashes []Flash
	for _, kind := range []string{FlashSuccess, FlashError} {
		for _, v := range sess.Flashes(kind) {
			if msg, ok := v.(string); ok {
				flashes = append(flashes, Flash{Kind: kind, Message: msg})
			}
		}
	}

	if len(flashes) > 0 {
		if err := sess.Save(r, w); err != nil {
			logger.Log.WithError(err).Warn("Failed to clear flash messages")
		}
	}
	return flashes
}
