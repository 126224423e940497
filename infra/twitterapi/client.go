package twitterapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/infra/auth"
)

// Client is a thin HTTP wrapper for the Twitter API v2.
// It handles base URL construction and bearer token injection.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
}

// NewClient creates an API client.
func NewClient(baseURL string, tp auth.TokenProvider) *Client {
	return &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{},
	}
}

// WithToken returns a copy of the client using tp for authentication.
func (c *Client) WithToken(tp auth.TokenProvider) *Client {
	cp := *c
	cp.tokenProvider = tp
	return &cp
}

// APIError is a non-2xx response.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Unwrap maps credential rejections to domain.ErrUnauthorized.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return domain.ErrUnauthorized
	}
	return nil
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path)
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	if c.tokenProvider == nil {
		return nil, fmt.Errorf("%w: no token provider", domain.ErrUnauthorized)
	}
	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}
