package bgg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://boardgamegeek.com/xmlapi/"
	defaultHTTPTimeout = 30 * time.Second
	maxBodyBytes       = 32 << 20
	maxErrorBodyBytes  = 512

	queuedMarker = "Your request for this collection has been accepted and will be processed"
)

var (
	// ErrCollectionQueued means the catalog is still building the collection export.
	// Try again later.
	ErrCollectionQueued = errors.New("collection request accepted and queued, try again later")
	// ErrNotFound is returned for unknown users and ids.
	ErrNotFound = errors.New("not found in catalog")
	// ErrEmptyResponse is returned when the catalog answers with an empty body.
	ErrEmptyResponse = errors.New("empty response from catalog")
	// ErrResponseTooLarge is returned when a body exceeds the read limit.
	ErrResponseTooLarge = errors.New("catalog response too large")
)

// StatusError is returned for non-2xx responses. Body holds at most the first
// 512 bytes of the response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog request %s: http %d: %s", e.URL, e.StatusCode, strings.TrimSpace(e.Body))
}

// Client talks to the catalog xmlapi and returns raw XML documents.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	maxBody    int64
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// NewClient constructs a catalog client from configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimSpace(cfg.BaseURL),
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		maxBody:    maxBodyBytes,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(client.baseURL, "/") {
		client.baseURL += "/"
	}
	return client
}

// FetchCollection returns the raw collection document of username. The request is
// never retried; a queued export yields ErrCollectionQueued.
func (c *Client) FetchCollection(ctx context.Context, username string) ([]byte, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}
	body, err := c.get(ctx, "collection", username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("collection of %s: %w", username, err)
		}
		return nil, err
	}
	if bytes.Contains(body, []byte(queuedMarker)) {
		return nil, ErrCollectionQueued
	}
	return body, nil
}

// FetchBoardgame returns the raw detail document of a single catalog id.
func (c *Client) FetchBoardgame(ctx context.Context, id string) ([]byte, error) {
	body, err := c.get(ctx, "boardgame", id)
	if err != nil {
		return nil, fmt.Errorf("boardgame %s: %w", id, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path, param string) ([]byte, error) {
	endpoint := c.baseURL + path + "/" + url.PathEscape(param)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", endpoint, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrResponseTooLarge, endpoint, c.maxBody)
	}

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return nil, ErrCollectionQueued
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode, Body: errorExcerpt(body)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}
	return body, nil
}

func errorExcerpt(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) > maxErrorBodyBytes {
		return string(body[:maxErrorBodyBytes]) + "..."
	}
	return string(body)
}
