// Package fetch retrieves theme documents and the theme index over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmylchreest/themepad/internal/model"
)

// IndexFile is the name of the theme index document under the base URL.
const IndexFile = "index.json"

// maxDocumentBytes caps the size of a fetched theme or index document.
const maxDocumentBytes = 4 << 20

// Client fetches theme documents from a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables the timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

// NewClient creates a new Client. baseURL is normalized to end with "/".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ThemeURL returns the document URL for a theme id.
func (c *Client) ThemeURL(id string) string {
	return c.baseURL + url.PathEscape(id) + ".json"
}

// IndexURL returns the theme index URL.
func (c *Client) IndexURL() string {
	return c.baseURL + IndexFile
}

// FetchTheme downloads and parses a single theme.
// A non-success status is reported as model.ErrNotFound carrying the id.
func (c *Client) FetchTheme(ctx context.Context, id string) (*model.Theme, error) {
	data, status, err := c.get(ctx, c.ThemeURL(id))
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: %s (HTTP %d)", model.ErrNotFound, id, status)
	}
	return ParseTheme(data)
}

// FetchIndex downloads and parses the theme index.
func (c *Client) FetchIndex(ctx context.Context) ([]model.ThemeSummary, error) {
	data, status, err := c.get(ctx, c.IndexURL())
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: index (HTTP %d)", model.ErrNetwork, status)
	}
	return ParseIndex(data)
}

// get performs a GET and returns the body and status code.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: create request: %w", model.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %w", model.ErrNetwork, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, resp.StatusCode, fmt.Errorf("%w: document exceeds %d bytes", model.ErrNetwork, maxDocumentBytes)
	}

	c.logger.Debug("fetched document",
		"url", reqURL,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(started))

	return data, resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
