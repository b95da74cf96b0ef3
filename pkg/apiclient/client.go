// Package apiclient is a Go client for the Wordly API. It mirrors the
// browser client's session handling: credentials live in httpOnly cookies
// managed by a jar, and a 401 on any authenticated call triggers one shared
// refresh before the original request is retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the Wordly backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	// refreshGroup collapses concurrent refresh attempts into one request.
	refreshGroup singleflight.Group

	// onSessionExpired fires when a refresh itself fails, meaning the
	// session is unrecoverable and the caller should re-authenticate.
	onSessionExpired func()
}

type Option func(*Client)

// WithHTTPClient swaps the underlying transport. The client installs its
// own cookie jar if the provided client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSessionExpiredHandler registers a callback invoked once per failed
// refresh.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("apiclient: cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// do performs one request. On a 401 it refreshes the session through the
// singleflight group and retries the original request exactly once. Requests
// to the login and refresh endpoints are never retried; a 401 there is the
// real answer.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	noRetry := path == "/auth/login" || path == "/auth/refresh-token"
	if resp.StatusCode == http.StatusUnauthorized && !noRetry {
		drain(resp)
		if err := c.refreshSession(ctx); err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}
	return decode(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// refreshSession runs at most one refresh request no matter how many callers
// hit a 401 at the same time; the rest wait for the shared result. The
// request itself is detached from the initiating caller's context, so one
// caller being cancelled cannot fail the refresh for everyone queued on it.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		resp, err := c.send(context.WithoutCancel(ctx), http.MethodPost, "/auth/refresh-token", nil)
		if err != nil {
			return nil, err
		}
		if err := decode(resp, nil); err != nil {
			// The session is unrecoverable. Drop the stale cookies so later
			// calls fail as logged-out instead of re-running a doomed refresh.
			c.clearSessionCookies()
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (c *Client) clearSessionCookies() {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	expired := make([]*http.Cookie, 0, 2)
	for _, name := range []string{"accessToken", "refreshToken"} {
		expired = append(expired, &http.Cookie{
			Name:   name,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
	}
	c.http.Jar.SetCookies(u, expired)
}

func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Message == "" {
			payload.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
