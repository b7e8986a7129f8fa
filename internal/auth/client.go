package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// Session is an authenticated account plus its bearer token.
type Session struct {
	Token string
	User  domain.User
}

// Client talks to the backend auth endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a Client targeting the given auth base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	return c.session(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	return c.session(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Logout invalidates the token server-side. Callers should clear their
// local store regardless of the result.
func (c *Client) Logout(ctx context.Context, token string) error {
	body, status, err := c.post(ctx, "/auth/logout", token, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("auth logout returned status %d: %s", status, body)
	}
	return nil
}

// Verify checks a token against the server and returns the account it
// belongs to.
func (c *Client) Verify(ctx context.Context, token string) (domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/verify", http.NoBody)
	if err != nil {
		return domain.User{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.User{}, fmt.Errorf("calling auth verify: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.User{}, fmt.Errorf("reading verify response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return domain.User{}, ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return domain.User{}, fmt.Errorf("auth verify returned status %d: %s", resp.StatusCode, body)
	}

	return parseUser(gjson.ParseBytes(body)), nil
}

func (c *Client) session(ctx context.Context, path string, payload map[string]string) (Session, error) {
	body, status, err := c.post(ctx, path, "", payload)
	if err != nil {
		return Session{}, err
	}
	if status == http.StatusUnauthorized {
		return Session{}, ErrNotAuthenticated
	}
	if status < 200 || status > 299 {
		return Session{}, fmt.Errorf("auth %s returned status %d: %s", path, status, body)
	}

	parsed := gjson.ParseBytes(body)
	session := Session{
		Token: parsed.Get("token").String(),
		User:  parseUser(parsed.Get("user")),
	}
	if session.Token == "" {
		return Session{}, fmt.Errorf("auth %s: response carried no token", path)
	}

	c.log.Info("session established", "user", session.User.Email)
	return session, nil
}

func (c *Client) post(ctx context.Context, path, token string, payload any) ([]byte, int, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("calling auth %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s response: %w", path, err)
	}
	return body, resp.StatusCode, nil
}

func parseUser(row gjson.Result) domain.User {
	u := domain.User{
		ID:    row.Get("id").String(),
		Name:  row.Get("name").String(),
		Email: row.Get("email").String(),
	}
	if u.ID == "" {
		u.ID = row.Get("_id").String()
	}
	return u
}
