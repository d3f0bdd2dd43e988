// Package images finds illustrative pictures for dictionaries and words.
package images

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

// ErrDisabled is returned when no access key is configured.
var ErrDisabled = errors.New("image lookup disabled")

// ErrNoResult means the provider answered but had no usable image.
var ErrNoResult = errors.New("no image found")

// NoopFinder never finds anything. It is used when lookups are not configured.
type NoopFinder struct{}

func (NoopFinder) Find(context.Context, string) (string, error) {
	return "", ErrDisabled
}

type Config struct {
	AccessKey  string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint
}

// UnsplashClient fetches a random landscape photo matching a query.
type UnsplashClient struct {
	http       *resty.Client
	accessKey  string
	timeout    time.Duration
	maxRetries uint
}

func NewUnsplashClient(cfg Config) *UnsplashClient {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Accept-Version", "v1")

	return &UnsplashClient{
		http:       client,
		accessKey:  cfg.AccessKey,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
	}
}

type randomPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unsplash returned %d: %s", e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= http.StatusInternalServerError
}

// Find returns the regular-size URL of a photo for query. Server errors and
// rate limiting are retried with backoff; other client errors are not. The
// configured timeout bounds the whole lookup, retries included.
func (c *UnsplashClient) Find(ctx context.Context, query string) (string, error) {
	if c.accessKey == "" {
		return "", ErrDisabled
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrNoResult
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var url string
	err := retry.Do(
		func() error {
			found, err := c.random(ctx, query)
			if err != nil {
				var serr *statusError
				if errors.As(err, &serr) && !serr.retryable() {
					return retry.Unrecoverable(err)
				}
				if errors.Is(err, ErrNoResult) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			url = found
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetries+1),
		retry.LastErrorOnly(true),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return "", err
	}
	return url, nil
}

func (c *UnsplashClient) random(ctx context.Context, query string) (string, error) {
	var photo randomPhoto
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":       query,
			"orientation": "landscape",
			"client_id":   c.accessKey,
		}).
		SetResult(&photo).
		Get("/photos/random")
	if err != nil {
		return "", fmt.Errorf("request random photo: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", &statusError{code: res.StatusCode(), body: truncate(res.String(), 200)}
	}
	if photo.URLs.Regular == "" {
		return "", ErrNoResult
	}
	return photo.URLs.Regular, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
