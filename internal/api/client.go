// Package api is the HTTP client of the remote recipes API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"foodRecipesWebsite/internal/models"

	"golang.org/x/net/publicsuffix"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	// Timeout bounds each call; zero leaves it to the transport.
	Timeout time.Duration
	// WithCredentials keeps cookies the API sets and replays them on later
	// calls made by the same client.
	WithCredentials bool
	// Transport overrides http.DefaultTransport.
	Transport http.RoundTripper
}

// Client calls the remote API. The Authorization header is computed per
// call from its TokenSource.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client that authenticates with tokens.
func New(cfg Config, tokens TokenSource) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	hc := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &bearerTransport{tokens: tokens, base: base},
	}

	if cfg.WithCredentials {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("api: create cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
	}, nil
}

// Factory builds per-request clients that share one configuration.
type Factory struct {
	cfg Config
}

func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// For returns a client whose calls authenticate with tokens.
func (f *Factory) For(tokens TokenSource) (*Client, error) {
	return New(f.cfg, tokens)
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrTransport, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(status int, payload []byte) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(payload, &body)
	return &Error{StatusCode: status, Message: body.Message}
}

// Login exchanges credentials for a token and the user.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.Post(ctx, LoginPath, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.Post(ctx, RegisterPath, reg, nil)
}

func (c *Client) Countries(ctx context.Context) ([]models.Country, error) {
	var out []models.Country
	if err := c.Get(ctx, CountriesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.Get(ctx, ProfilePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	return c.Put(ctx, UpdateProfilePath, update, nil)
}

func (c *Client) CreateRecipe(ctx context.Context, in models.RecipeInput) error {
	return c.Post(ctx, CreateRecipePath, in, nil)
}

func (c *Client) Recipes(ctx context.Context) ([]models.Recipe, error) {
	out := []models.Recipe{}
	if err := c.Get(ctx, RecipesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateRecipe(ctx context.Context, id int, in models.RecipeInput) error {
	return c.Put(ctx, RecipeUpdatePath(id), in, nil)
}

func (c *Client) DeleteRecipe(ctx context.Context, id int) error {
	return c.Delete(ctx, RecipeDeletePath(id), nil)
}
