// Package scrape fetches the published dissertation list and extracts the
// raw records from its HTML table.
package scrape

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/daimidata/daimidata/pkg/cache"
	"github.com/daimidata/daimidata/pkg/errors"
)

// SourceURL is the department page listing all produced PhDs.
const SourceURL = "https://cs.au.dk/education/phd/phds-produced/"

const (
	requestTimeout = 10 * time.Second
	userAgent      = "daimidata/1.0 (+https://github.com/daimidata/daimidata)"

	// DefaultTTL is how long a fetched page stays valid in the cache.
	DefaultTTL = 24 * time.Hour
)

// Client fetches pages with caching and retry logic. The zero value is not
// usable; obtain one via NewClient.
type Client struct {
	http  *http.Client
	cache cache.Cache
	ttl   time.Duration
}

// NewClient creates a Client backed by the given cache. Pass a NullCache
// to disable caching entirely.
func NewClient(c cache.Cache) *Client {
	return &Client{
		http:  &http.Client{Timeout: requestTimeout},
		cache: c,
		ttl:   DefaultTTL,
	}
}

// FetchPage retrieves a page, serving it from cache when a fresh copy is
// available. If refresh is true the cache is bypassed and the page is
// re-fetched. Transient failures are retried with exponential backoff.
func (c *Client) FetchPage(ctx context.Context, url string, refresh bool) ([]byte, error) {
	key := "page:" + url
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			return data, nil
		}
	}

	var body []byte
	fetch := func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	}
	if err := RetryWithBackoff(ctx, fetch); err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, key, body, c.ttl)
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		code := errors.ErrCodeNetwork
		if stderrors.Is(err, context.DeadlineExceeded) {
			code = errors.ErrCodeTimeout
		}
		return nil, &RetryableError{Err: errors.Wrap(code, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s returned 404", url)
	case code >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s returned status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "%s returned status %d", url, code)
	}
}
