package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Retry configuration
	initialDelay = 1 * time.Second
	maxDelay     = 8 * time.Second
)

// ErrNotFound is returned when the catalog answers with zero matches.
var ErrNotFound = errors.New("no matching volume in catalog")

// Options configures a Client.
type Options struct {
	ISBNURL     string // template containing {isbn}
	CategoryURL string // template containing {category}
	APIKey      string
	Timeout     time.Duration
	RateLimit   int // requests per second
	MaxRetries  int
	UserAgent   string
}

// Client queries the remote book catalog with rate limiting and optional retries
type Client struct {
	isbnURL     string
	categoryURL string
	apiKey      string
	userAgent   string
	maxRetries  int
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new catalog client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.RateLimit < 1 {
		opts.RateLimit = 1
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "bookscan/1.0"
	}
	return &Client{
		isbnURL:     opts.ISBNURL,
		categoryURL: opts.CategoryURL,
		apiKey:      opts.APIKey,
		userAgent:   opts.UserAgent,
		maxRetries:  opts.MaxRetries,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit),
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger.With("component", "catalog"),
	}
}

// LookupISBN fetches the first volume matching code. It returns ErrNotFound
// when the catalog has no match.
func (c *Client) LookupISBN(ctx context.Context, code string) (*Volume, error) {
	endpoint := expand(c.isbnURL, "{isbn}", code)

	var response VolumesResponse
	if err := c.doRequest(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", code, err)
	}
	if response.TotalItems == 0 || len(response.Items) == 0 {
		return nil, ErrNotFound
	}

	vol := response.Items[0].VolumeInfo.Flatten()
	return &vol, nil
}

// SearchByCategory returns the raw metadata of volumes filed under category,
// in catalog order.
func (c *Client) SearchByCategory(ctx context.Context, category string) ([]VolumeInfo, error) {
	endpoint := expand(c.categoryURL, "{category}", category)

	var response VolumesResponse
	if err := c.doRequest(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to search category %q: %w", category, err)
	}

	infos := make([]VolumeInfo, 0, len(response.Items))
	for _, item := range response.Items {
		infos = append(infos, item.VolumeInfo)
	}
	return infos, nil
}

// doRequest performs a GET with rate limiting and retry logic
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	fullURL, err := c.withKey(endpoint)
	if err != nil {
		return err
	}

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying catalog request", "attempt", attempt+1, "delay", delay, "error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay = minDuration(delay*2, maxDelay)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		retry, err := c.do(ctx, fullURL, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// do runs a single attempt and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, fullURL string, result interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return shouldRetry(resp.StatusCode), fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return false, fmt.Errorf("failed to parse response: %w", err)
	}
	return false, nil
}

func (c *Client) withKey(endpoint string) (string, error) {
	if c.apiKey == "" {
		return endpoint, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid catalog URL: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func expand(template, placeholder, value string) string {
	return strings.ReplaceAll(template, placeholder, url.QueryEscape(value))
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// minDuration returns the smaller of two durations
func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
