package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lukaschristensson/TimeLinePlot/pkg/buildinfo"
	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/observability"
)

const (
	// DefaultMaxBytes caps a fetched record file.
	DefaultMaxBytes = 16 << 20

	DefaultAttempts = 3
	DefaultDelay    = 500 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
)

// Fetcher downloads record files.
type Fetcher struct {
	client   *http.Client
	attempts int
	delay    time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient replaces the HTTP client. Its timeout is left as is.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithAttempts sets how many times a transient failure is tried.
func WithAttempts(n int) Option {
	return func(f *Fetcher) { f.attempts = n }
}

// WithDelay sets the wait before the first retry.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.delay = d }
}

// WithMaxBytes sets the largest accepted response body.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) { f.maxBytes = n }
}

// NewFetcher returns a Fetcher with the defaults above.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: DefaultTimeout},
		attempts: DefaultAttempts,
		delay:    DefaultDelay,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get returns the body of url. Failures carry [errors.ErrCodeNetwork], or
// [errors.ErrCodeFileNotFound] for a 404.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	hooks := observability.Fetch()
	hooks.OnFetchStart(ctx, url)
	start := time.Now()

	var body []byte
	attempts := 0
	err := Retry(ctx, f.attempts, f.delay, func() error {
		attempts++
		var err error
		body, err = f.get(ctx, url)
		return err
	})
	hooks.OnFetchComplete(ctx, url, len(body), attempts, time.Since(start), err)
	if err == nil {
		return body, nil
	}
	if errors.GetCode(err) != "" {
		return nil, err
	}
	return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "bad url %s", url)
	}
	req.Header.Set("User-Agent", "timelineplot/"+buildinfo.Version)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "%s: %s", url, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("%s: %s", url, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork, "%s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	if int64(len(body)) > f.maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d bytes", url, f.maxBytes)
	}
	return body, nil
}
