package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/agentstation/tagsync/pkg/constants"
	"github.com/agentstation/tagsync/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides paced, authenticated HTTP calls against one API.
type Client struct {
	http    *http.Client
	auth    Authenticator
	token   string
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit paces requests with a token bucket of rps requests per
// second. rps <= 0 disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient uses a copy of hc for requests. Apply it before
// WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.http = &cp
		}
	}
}

// WithLogger sets the logger used for request traces.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new transport client that authenticates with token.
func New(auth Authenticator, token string, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	nop := zerolog.Nop()
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    auth,
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(constants.DefaultRateLimit), constants.DefaultRateBurst),
		logger:  &nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do waits for the pacer, applies credentials and common headers, and
// performs req. The caller owns the response body.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %w", errors.ErrCanceled, err)
		}
	}
	req = req.WithContext(ctx)

	if c.token != "" {
		c.auth.Apply(req, c.token)
	}
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, ctx.Err())
		}
		return nil, &errors.APIError{
			Method:   req.Method,
			Endpoint: req.URL.Path,
			Err:      err,
		}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("HTTP request")

	return resp, nil
}
