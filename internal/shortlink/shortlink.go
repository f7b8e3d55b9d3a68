// Package shortlink creates short share URLs through a TinyURL-compatible
// HTTP API.
package shortlink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/starford/wunjo/internal/apperr"
)

// Client calls the URL shortening service. A failed call surfaces as an
// apperr.ErrRemote-wrapped error for the API layer to report; it is never
// retried here.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	domain     string
}

// NewClient creates a shortener client. apiURL is the service base URL
// (e.g. https://api.tinyurl.com), token the Bearer credential, domain the
// short-link domain to mint under.
func NewClient(apiURL, token, domain string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     apiURL,
		token:      token,
		domain:     domain,
	}
}

type createRequest struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

type createResponse struct {
	Data struct {
		TinyURL string `json:"tiny_url"`
	} `json:"data"`
}

// Shorten returns a short URL for longURL.
func (c *Client) Shorten(ctx context.Context, longURL string) (string, error) {
	body, err := json.Marshal(createRequest{URL: longURL, Domain: c.domain})
	if err != nil {
		return "", fmt.Errorf("shortlink: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/create", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("shortlink: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("shortlink: %w: %v", apperr.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("shortlink: %w: status %d", apperr.ErrRemote, resp.StatusCode)
	}

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("shortlink: %w: decode response: %v", apperr.ErrRemote, err)
	}
	if out.Data.TinyURL == "" {
		return "", fmt.Errorf("shortlink: %w: empty tiny_url in response", apperr.ErrRemote)
	}
	return out.Data.TinyURL, nil
}
