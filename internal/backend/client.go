package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

const (
	DefaultBaseURL          = "http://127.0.0.1:5000"
	DefaultTimeout          = 30 * time.Second
	DefaultInferenceTimeout = 60 * time.Second
	DefaultMaxAttempts      = 3
	DefaultRetryDelay       = time.Second

	maxBodyBytes = 10 << 20
)

// Config configures a Client. Zero fields take the defaults above.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	InferenceTimeout time.Duration
	MaxAttempts      int
	RetryDelay       time.Duration
	HTTPClient       *http.Client
	Recorder         telemetry.Recorder
}

// Client talks to the analytics backend.
type Client struct {
	base        string
	timeout     time.Duration
	inference   time.Duration
	maxAttempts int
	retryDelay  time.Duration
	http        *http.Client
	rec         telemetry.Recorder
}

// Request is a single backend call. Inference selects the longer timeout used
// for AI-backed endpoints.
type Request struct {
	Method    string
	Path      string
	Params    url.Values
	Inference bool
}

// Response is a completed HTTP exchange, whatever its status.
type Response struct {
	Status   int
	Body     []byte
	Duration time.Duration
}

func New(cfg Config) *Client {
	c := &Client{
		base:        strings.TrimRight(cfg.BaseURL, "/"),
		timeout:     cfg.Timeout,
		inference:   cfg.InferenceTimeout,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		http:        cfg.HTTPClient,
		rec:         telemetry.OrNop(cfg.Recorder),
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.inference <= 0 {
		c.inference = DefaultInferenceTimeout
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = DefaultMaxAttempts
	}
	if c.retryDelay < 0 {
		c.retryDelay = 0
	} else if c.retryDelay == 0 {
		c.retryDelay = DefaultRetryDelay
	}
	if c.http == nil {
		// per-request deadlines come from the context
		c.http = &http.Client{}
	}
	return c
}

func (c *Client) BaseURL() string { return c.base }

// Do performs req, retrying refused connections and network failures up to the
// configured number of attempts with a fixed delay in between. HTTP error
// statuses are returned as a Response, not retried.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	target := c.base + req.Path
	if len(req.Params) > 0 {
		target += "?" + req.Params.Encode()
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.maxAttempts-1)),
		ctx,
	)
	attempt := 0
	var resp *Response
	op := func() error {
		attempt++
		r, err := c.once(ctx, req, target)
		if err != nil {
			if !Retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		resp = r
		return nil
	}
	notify := func(_ error, _ time.Duration) {
		c.rec.Warn("retrying request", map[string]any{
			"url":          target,
			"attempt":      attempt,
			"attemptsLeft": c.maxAttempts - attempt,
		})
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		var be *Error
		if !errors.As(err, &be) {
			// the context ended while waiting between attempts
			return nil, classify(err, req.Method, target, c.base)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) once(ctx context.Context, req Request, target string) (*Response, error) {
	timeout := c.timeout
	if req.Inference {
		timeout = c.inference
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, nil)
	if err != nil {
		return nil, &Error{Kind: ErrInvalidRequest, Method: req.Method, URL: target, Message: fmt.Sprintf("invalid request: %v", err), Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	c.rec.APICall(req.Method, target)
	start := time.Now()
	res, err := c.http.Do(httpReq)
	if err != nil {
		e := classify(err, req.Method, target, c.base)
		c.rec.APIError(req.Method, target, 0, e)
		return nil, e
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		e := classify(err, req.Method, target, c.base)
		c.rec.APIError(req.Method, target, res.StatusCode, e)
		return nil, e
	}
	d := time.Since(start)
	c.rec.APIResponse(req.Method, target, res.StatusCode, d)
	if res.StatusCode >= http.StatusBadRequest {
		c.rec.APIError(req.Method, target, res.StatusCode, fmt.Errorf("HTTP error! status: %d", res.StatusCode))
	}
	return &Response{Status: res.StatusCode, Body: body, Duration: d}, nil
}

// Health reports whether the backend root endpoint answers with a success
// status. The body is not inspected.
func (c *Client) Health(ctx context.Context) bool {
	resp, err := c.Do(ctx, Request{Path: "/"})
	return err == nil && resp.Status < http.StatusBadRequest
}
