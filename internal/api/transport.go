package api

import (
	"net/http"

	"golang.org/x/oauth2"
)

// TokenSource yields the token to send with the next call. The session
// handle implements it, so the header always follows the current session.
type TokenSource interface {
	Token() (string, bool)
}

// bearerTransport adds "Authorization: Bearer <token>" to each request when
// a token is available at the moment the request is sent.
type bearerTransport struct {
	tokens TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return t.base.RoundTrip(req)
	}

	token, ok := t.tokens.Token()
	if !ok {
		return t.base.RoundTrip(req)
	}

	rt := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   t.base,
	}
	return rt.RoundTrip(req)
}

// staticTokens is a TokenSource over a fixed value.
type staticTokens string

func (s staticTokens) Token() (string, bool) {
	return string(s), s != ""
}

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return staticTokens(token)
}
