// Package apiclient is the Go client for the forge backend API. It carries
// an opaque bearer token and implements conversation.Backend so the
// conversation store can run in authenticated mode.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/forge-ai/forge/internal/types"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsDegraded reports whether the error is the backend's no-database 503.
// Callers treat it as "run local-only".
func IsDegraded(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusServiceUnavailable
}

// Client talks to one backend instance. Safe for concurrent use once the
// token is set.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken sets the bearer token up front.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, typically after login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		message := resp.Status
		if data, err := io.ReadAll(resp.Body); err == nil {
			if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
				message = payload.Error
			}
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, email, password, name string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	req := types.RegisterRequest{Email: email, Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	req := types.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Logout revokes the token server-side and drops it locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// ListConversations returns the caller's conversations, newest first, with
// messages nested in creation order.
func (c *Client) ListConversations(ctx context.Context) ([]types.Conversation, error) {
	var out []types.Conversation
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateConversation creates an empty conversation.
func (c *Client) CreateConversation(ctx context.Context, title string) (*types.Conversation, error) {
	var out types.Conversation
	body := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPost, "/api/conversations", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddMessage appends a message and returns the canonical server copy.
func (c *Client) AddMessage(ctx context.Context, conversationID string, role types.MessageRole, content string) (*types.Message, error) {
	var out types.Message
	body := map[string]string{"role": string(role), "content": content}
	path := "/api/conversations/" + conversationID + "/messages"
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteConversation removes a conversation owned by the caller.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	return c.do(ctx, http.MethodDelete, "/api/conversations/"+conversationID, nil, nil)
}
