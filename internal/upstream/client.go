package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Fetcher loads a JSON document into out.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, out any) error
}

// Client is the retryablehttp-backed Fetcher.
type Client struct {
	http   *retryablehttp.Client
	logger zerolog.Logger
}

var _ Fetcher = (*Client)(nil)

type Option func(*options)

type options struct {
	timeout  time.Duration
	retryMax int
	waitMin  time.Duration
	waitMax  time.Duration
	logger   zerolog.Logger
}

// WithTimeout bounds each request attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRetryMax sets how many extra attempts are made for retryable failures.
// Zero disables retries.
func WithRetryMax(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.retryMax = n
		}
	}
}

// WithRetryWait bounds the backoff between retry attempts.
func WithRetryWait(min, max time.Duration) Option {
	return func(o *options) {
		if min > 0 && max >= min {
			o.waitMin, o.waitMax = min, max
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds a Client.
func New(opts ...Option) *Client {
	cfg := options{timeout: defaultTimeout, logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.retryMax
	if cfg.waitMin > 0 {
		retryClient.RetryWaitMin = cfg.waitMin
		retryClient.RetryWaitMax = cfg.waitMax
	}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = leveledLogger{logger: cfg.logger}
	retryClient.HTTPClient.Timeout = cfg.timeout

	return &Client{http: retryClient, logger: cfg.logger}
}

// FetchJSON issues GET url and decodes the body into out. Any non-2xx status
// is an error even when the body is valid JSON.
func (c *Client) FetchJSON(ctx context.Context, url string, out any) error {
	if strings.TrimSpace(url) == "" {
		return &LoadError{URL: url, Err: ErrMissingURL}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &LoadError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &LoadError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &LoadError{URL: url, StatusCode: resp.StatusCode, Err: ErrStatus}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return &LoadError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}
	return nil
}
