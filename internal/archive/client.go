package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"playlist-viewer/internal/logging"
	"playlist-viewer/internal/metrics"
)

// DefaultBaseURL is the archive.org origin serving the metadata endpoint.
const DefaultBaseURL = "https://archive.org"

// maxMetadataBytes bounds how much of a metadata response is decoded.
const maxMetadataBytes = 32 << 20

// Client fetches item metadata from archive.org. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another origin, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets an overall request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a metadata client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		userAgent:  "PlaylistViewer/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MetadataURL returns the endpoint queried for identifier.
func (c *Client) MetadataURL(identifier string) string {
	return c.baseURL + "/metadata/" + EncodeURIComponent(identifier)
}

// Metadata fetches the file listing of an item. Any non-2xx status,
// transport failure or undecodable body is returned as *FetchError.
func (c *Client) Metadata(ctx context.Context, identifier string) (*Metadata, error) {
	start := time.Now()
	endpoint := c.MetadataURL(identifier)

	meta, status, err := c.fetch(ctx, identifier, endpoint)

	metrics.ArchiveRequestDuration.Observe(time.Since(start).Seconds())
	metrics.ArchiveRequestsTotal.WithLabelValues(status).Inc()

	if err != nil {
		logging.Warn("Archive metadata request for %s failed: %v", identifier, err)
		return nil, err
	}

	metrics.ArchiveFilesReturned.Observe(float64(len(meta.Files)))
	logging.Debug("Archive metadata for %s: %d files in %v", identifier, len(meta.Files), time.Since(start))
	return meta, nil
}

// fetch performs the request and reports the outcome label used for metrics.
func (c *Client) fetch(ctx context.Context, identifier, endpoint string) (*Metadata, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, "network_error", &FetchError{Identifier: identifier, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "network_error", &FetchError{Identifier: identifier, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, "http_error", &FetchError{Identifier: identifier, StatusCode: resp.StatusCode}
	}

	var meta Metadata
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataBytes)).Decode(&meta); err != nil {
		return nil, "decode_error", &FetchError{Identifier: identifier, Err: fmt.Errorf("invalid metadata response: %w", err)}
	}

	return &meta, "success", nil
}
