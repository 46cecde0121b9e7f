package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultRateLimit   = 1.0
	defaultBurst       = 3
	defaultMaxRetries  = 2
	defaultBaseBackoff = 500 * time.Millisecond
)

type Request struct {
	Method  string
	URL     string
	Header  http.Header
	Body    []byte
	// NoRetry sends the request exactly once, for calls that must not be replayed.
	NoRetry bool
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Doer performs one logical request and returns the fully read response. A non-2xx status
// is not an error at this level.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

type HTTPClientOption func(*HTTPClient)

// HTTPClient is a Doer over net/http with client-side rate limiting and bounded retries of
// rate-limited, 5xx and network failures.
type HTTPClient struct {
	http        *http.Client
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		http:        &http.Client{Timeout: defaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBaseBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHttpClient uses a copy of httpClient; nil keeps the default client.
func WithHttpClient(httpClient *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		if httpClient == nil {
			return
		}
		cp := *httpClient
		c.http = &cp
	}
}

func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		if timeout <= 0 {
			return
		}
		cp := *c.http
		cp.Timeout = timeout
		c.http = &cp
	}
}

// WithRateLimit sets requests per second and burst. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) HTTPClientOption {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

func WithRetries(maxRetries int, baseBackoff time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		c.maxRetries = max(maxRetries, 0)
		if baseBackoff > 0 {
			c.baseBackoff = baseBackoff
		}
	}
}

func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if _, err := url.Parse(req.URL); err != nil {
		return nil, apperr.Wrap(apperr.KindTransportFailure, "transport.do", err)
	}

	var lastErr error
	var lastResp *Response

	maxRetries := c.maxRetries
	if req.NoRetry {
		maxRetries = 0
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.baseBackoff * time.Duration(1<<(attempt-1))
			slog.Debug("Retrying request", "url", req.URL, "attempt", attempt, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, apperr.Wrap(apperr.KindTransportFailure, "transport.do", ctx.Err())
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperr.Wrap(apperr.KindTransportFailure, "transport.do", fmt.Errorf("rate limiter: %w", err))
		}

		resp, err := c.do(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, apperr.Wrap(apperr.KindTransportFailure, "transport.do", err)
			}
			lastErr, lastResp = err, nil
			continue
		}

		if !retryable(resp.StatusCode) {
			return resp, nil
		}
		lastErr, lastResp = nil, resp
	}

	if lastResp != nil {
		return lastResp, nil
	}
	return nil, apperr.Wrap(apperr.KindTransportFailure, "transport.do", lastErr)
}

func (c *HTTPClient) do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	request, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vals := range req.Header {
		for _, v := range vals {
			request.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// IsTransportFailure reports whether err came from the network rather than an upstream status.
func IsTransportFailure(err error) bool {
	return errors.Is(err, apperr.ErrTransportFailure)
}
