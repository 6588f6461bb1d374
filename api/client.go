// Package api is a thin client for the blog backend's REST API.
//
// Every call takes the caller's bearer token explicitly; the client holds no
// credentials of its own. Failures are returned unmodified: there is no
// retry, backoff, or caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseSize = 8 << 20 // 8MB

// Client dispatches requests to a single backend base URL.
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.base }

// Login exchanges credentials for an access token and user record.
func (c *Client) Login(ctx context.Context, cred Credentials) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", "", cred, &out)
	return out, err
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", reg, nil)
}

// ListPosts fetches every post.
func (c *Client) ListPosts(ctx context.Context, token string) ([]Post, error) {
	var out []Post
	err := c.do(ctx, http.MethodGet, "/posts", token, nil, &out)
	return out, err
}

// GetPost fetches one post with its author and timestamps.
func (c *Client) GetPost(ctx context.Context, token string, id ID) (Post, error) {
	var out Post
	err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(string(id)), token, nil, &out)
	return out, err
}

// CreatePost submits a new post and returns it as created.
func (c *Client) CreatePost(ctx context.Context, token string, in PostInput) (Post, error) {
	var out Post
	err := c.do(ctx, http.MethodPost, "/posts", token, in, &out)
	return out, err
}

// UpdatePost replaces the title and content of a post.
func (c *Client) UpdatePost(ctx context.Context, token string, id ID, in PostInput) (Post, error) {
	var out Post
	err := c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(string(id)), token, in, &out)
	return out, err
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, token string, id ID) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(string(id)), token, nil, nil)
}

// ListUserPosts fetches the posts authored by userID.
func (c *Client) ListUserPosts(ctx context.Context, token string, userID ID) ([]Post, error) {
	var out []Post
	err := c.do(ctx, http.MethodGet, "/posts/user/"+url.PathEscape(string(userID)), token, nil, &out)
	return out, err
}

// do sends one request. in, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx body. An empty body leaves out untouched.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("api: read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}
