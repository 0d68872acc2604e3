// Package tripadvisor is a resilient client for the TripAdvisor Content API
// and the place directory adapter the discovery loop drives
package tripadvisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "tripmaker/internal/platform/errors"
	"tripmaker/internal/platform/logger"
	"tripmaker/internal/platform/metrics"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://api.content.tripadvisor.com/api/v1"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "tripmaker"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	defaultRPS       = 5
	defaultBurst     = 10
	defaultFailures  = 5
	defaultOpenFor   = 30 * time.Second
	maxBackoff       = 30 * time.Second
	maxBody          = 1 << 20
	breakerName      = "tripadvisor"
)

// Options configures the Client
type Options struct {
	APIKey    string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transport errors, 429 and 502/503/504
	MaxRetries int
	RetryBase  time.Duration

	// Client side throttle shared by every call
	RPS   float64
	Burst int

	// Consecutive failed calls that open the breaker, and how long it stays open
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	Metrics    *metrics.Metrics
	HTTPClient *http.Client
}

// Client is safe for concurrent use, all mutable state lives in the
// http.Client, the limiter and the breaker
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	metrics *metrics.Metrics
	log     logger.Logger
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// NewClient fills defaults, an empty APIKey is a programmer error
func NewClient(o Options) *Client {
	if o.APIKey == "" {
		panic("tripadvisor: empty API key")
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	if o.BreakerFailures == 0 {
		o.BreakerFailures = defaultFailures
	}
	if o.BreakerTimeout <= 0 {
		o.BreakerTimeout = defaultOpenFor
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}

	c := &Client{
		http:    hc,
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(o.RPS), o.Burst),
		metrics: o.Metrics,
		log:     *logger.Named("tripadvisor"),
		now:     time.Now,
		sleep:   sleepCtx,
	}
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     o.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= o.BreakerFailures
		},
		IsSuccessful: breakerNeutral,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("tripadvisor breaker state change")
			c.metrics.BreakerState(name, stateToFloat(to))
		},
	})
	c.metrics.BreakerState(breakerName, 0)
	return c
}

// BreakerState reports "closed", "half-open" or "open"
func (c *Client) BreakerState() string { return c.cb.State().String() }

// breakerNeutral keeps caller cancellations and 4xx answers from counting against the service
func breakerNeutral(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return isClientError(err)
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// get runs one logical call through the breaker and decodes the body into out.
// A body carrying an error object is returned as *APIError.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	body, err := c.cb.Execute(func() ([]byte, error) {
		b, err := c.do(ctx, endpoint, path, q)
		if err != nil {
			return nil, err
		}
		if apiErr := bodyError(b); apiErr != nil {
			return nil, apiErr
		}
		return b, nil
	})
	if err != nil {
		return c.classify(endpoint, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "tripadvisor %s decode failed", endpoint)
	}
	return nil
}

// classify maps transport level failures onto project error codes.
// Context errors pass through untouched so callers can tell cancellation apart.
func (c *Client) classify(endpoint string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.metrics.DirectoryCall(endpoint, "rejected", 0)
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "tripadvisor circuit open"), endpoint)
	}
	if perr.CodeOf(err) != perr.ErrorCodeUnknown {
		return perr.WithOp(err, endpoint)
	}
	code, msg := perr.ErrorCodeUpstream, "tripadvisor request failed"
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		msg = "tripadvisor: " + ae.Message
	}
	switch {
	case IsNotFound(err):
		code = perr.ErrorCodeNotFound
	case IsRateLimited(err):
		code = perr.ErrorCodeTooManyRequests
	}
	return perr.WithOp(perr.Wrap(err, code, msg), endpoint)
}

// bodyError decodes an {"error":{...}} envelope, nil when the body is not one
func bodyError(b []byte) *APIError {
	var env struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(b, &env); err != nil || env.Error == nil {
		return nil
	}
	if env.Error.Status == 0 {
		env.Error.Status = http.StatusOK
	}
	return env.Error
}

// do issues GET path with the api key, throttling and retries, and returns the 200 body
func (c *Client) do(ctx context.Context, endpoint, path string, q url.Values) ([]byte, error) {
	qs := url.Values{}
	for k, v := range q {
		qs[k] = v
	}
	qs.Set("key", c.opts.APIKey)
	target := c.opts.BaseURL + path + "?" + qs.Encode()

	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			// the limiter refuses waits that would overrun the deadline
			return nil, fmt.Errorf("tripadvisor throttle: %w: %v", context.DeadlineExceeded, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "tripadvisor new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			c.metrics.DirectoryCall(endpoint, "transport_error", lat)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "tripadvisor %s failed", endpoint)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Str("endpoint", endpoint).Dur("retry_in", back).Int("attempt", attempts).Msg("tripadvisor transport error retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, err
			}
			attempts++
			continue
		}

		c.metrics.DirectoryCall(endpoint, strconv.Itoa(resp.StatusCode), lat)
		c.log.Debug().
			Str("endpoint", endpoint).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("tripadvisor http response")

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
			_ = resp.Body.Close()
			if err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "tripadvisor %s read body", endpoint)
			}
			return b, nil
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp.Header, c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			if wait > maxBackoff {
				wait = maxBackoff
			}
			if !c.shouldRetry(attempts) {
				return nil, statusError(resp)
			}
			c.log.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Dur("retry_in", wait).Int("attempt", attempts).Msg("tripadvisor transient status retrying")
			_ = drainAndClose(resp.Body)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			attempts++
			continue
		default:
			return nil, statusError(resp)
		}
	}
}

// statusError reads a small tail of resp and closes it
func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()
	if apiErr := bodyError(b); apiErr != nil {
		apiErr.Status = resp.StatusCode
		return apiErr
	}
	return &StatusError{Status: resp.StatusCode, Body: string(b)}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

// retryAfter reads Retry-After as seconds or an HTTP date
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if s, err := strconv.Atoi(v); err == nil {
		return time.Duration(s) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
