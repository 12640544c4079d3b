package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"nuage/internal/tile"
)

const (
	// MaxBodySize caps a tile response body to bound memory use
	MaxBodySize = 20 * 1024 * 1024

	// DefaultTimeout bounds the whole request including the body read
	DefaultTimeout = 30 * time.Second
)

var (
	// ErrStatus indicates the tile service answered with a non-2xx status
	ErrStatus = errors.New("unexpected response status")

	// ErrTooLarge indicates the response body exceeded MaxBodySize
	ErrTooLarge = errors.New("response body too large")
)

// Client retrieves raw tile images from the nowcast tile service.
// Requests are paced by a rate limiter since the service is
// rate-sensitive; acquisition is sequential by design on top of that.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	log        *zap.Logger
}

// NewClient creates a tile service client with system proxy support
// and a wall-clock timeout covering the full request
func NewClient(baseURL string, requestsPerSec float64, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if requestsPerSec <= 0 {
		requestsPerSec = 1
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		baseURL: baseURL,
		log:     log,
	}
}

// FetchTile downloads the raw image bytes for one tile key.
// Transient failures are returned to the caller; this client never
// retries on its own.
func (c *Client) FetchTile(ctx context.Context, key tile.Key) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := key.URL(c.baseURL)
	c.log.Debug("fetching tile", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	// Read one byte past the cap so an oversized body is detected
	// instead of silently truncated
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read tile body: %w", err)
	}
	if len(data) > MaxBodySize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, MaxBodySize)
	}

	return data, nil
}
