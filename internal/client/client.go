// Package client talks to the menu API the way the website does: it fetches
// collections, derives the public menu view and drives the admin endpoints
// with an explicit Session instead of ambient token storage.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cordonbleu-backend/internal/auth"
)

var ErrNoSession = errors.New("client: not logged in")

// APIError is a non-2xx response. Message is the server's "error" field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Session holds the token of one login. It is created by Login and emptied
// by Logout; nothing else keeps the token.
type Session struct {
	Token string
	User  auth.UserResponse
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

func (s *Session) Logout() {
	if s == nil {
		return
	}
	s.Token = ""
	s.User = auth.UserResponse{}
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient swaps the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) Register(ctx context.Context, username, password string) (*auth.UserResponse, error) {
	var out struct {
		User auth.UserResponse `json:"user"`
	}
	body := auth.RegisterRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var out auth.LoginResponse
	body := auth.LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &Session{Token: out.Token, User: out.User}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, s *Session, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, s, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, s *Session, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s != nil {
		if !s.LoggedIn() {
			return nil, ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Error
			if apiErr.Message == "" {
				apiErr.Message = payload.Message
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
