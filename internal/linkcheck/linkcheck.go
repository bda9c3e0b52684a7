// Package linkcheck verifies the outbound links of the site: external apply
// pages of listings and links inside blog posts.
package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for link checks.
const DefaultUserAgent = "Mozilla/5.0 (compatible; StudentJobsLinkCheck/1.0)"

// DefaultConcurrency bounds the number of requests in flight.
const DefaultConcurrency = 4

// DefaultRequestsPerSecond paces requests across all workers.
const DefaultRequestsPerSecond = 5

// Error represents a failed link check.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link check failed for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("link check failed for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the checker.
type Options struct {
	Timeout           time.Duration
	UserAgent         string
	Concurrency       int
	RequestsPerSecond float64
	// Client overrides the HTTP client. Its Timeout is left untouched.
	Client *http.Client
}

// DefaultOptions returns sensible defaults for checking.
func DefaultOptions() *Options {
	return &Options{
		Timeout:           DefaultTimeout,
		UserAgent:         DefaultUserAgent,
		Concurrency:       DefaultConcurrency,
		RequestsPerSecond: DefaultRequestsPerSecond,
	}
}

// Result is the outcome of checking one target.
type Result struct {
	Target
	StatusCode int
	Method     string
	Duration   time.Duration
	Err        error
}

// OK reports whether the link resolved to a 2xx response.
func (r Result) OK() bool {
	return r.Err == nil
}

// Checker checks links with bounded concurrency and a shared request rate.
type Checker struct {
	client      *http.Client
	userAgent   string
	concurrency int
	limiter     *rate.Limiter
}

// NewChecker creates a Checker. Zero option values fall back to the defaults.
func NewChecker(opts *Options) *Checker {
	defaults := DefaultOptions()
	if opts == nil {
		opts = defaults
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaults.Timeout
		}
		client = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaults.UserAgent
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaults.Concurrency
	}
	limit := rate.Limit(opts.RequestsPerSecond)
	if opts.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Checker{
		client:      client,
		userAgent:   userAgent,
		concurrency: concurrency,
		limiter:     rate.NewLimiter(limit, 1),
	}
}

// Check requests a single URL. HEAD is tried first; servers that reject it
// are retried with GET.
func (c *Checker) Check(ctx context.Context, target Target) Result {
	start := time.Now()
	res := Result{Target: target}

	parsed, err := url.Parse(target.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		res.Err = &Error{URL: target.URL, Message: "invalid URL", Cause: err}
		return res
	}

	res.Method = http.MethodHead
	res.StatusCode, err = c.do(ctx, http.MethodHead, target.URL)
	if err == nil && headRejected(res.StatusCode) {
		res.Method = http.MethodGet
		res.StatusCode, err = c.do(ctx, http.MethodGet, target.URL)
	}
	res.Duration = time.Since(start)

	switch {
	case err != nil:
		res.Err = &Error{URL: target.URL, Message: "HTTP request failed", Cause: err}
	case res.StatusCode < 200 || res.StatusCode > 299:
		res.Err = &Error{URL: target.URL, Message: fmt.Sprintf("HTTP status %d", res.StatusCode)}
	}
	return res
}

// CheckAll checks every target and returns the results in input order. Link
// failures are reported per result; the error is non-nil only when ctx ends
// before all checks ran.
func (c *Checker) CheckAll(ctx context.Context, targets []Target) ([]Result, error) {
	results := make([]Result, len(targets))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, target := range targets {
		g.Go(func() error {
			if err := c.limiter.Wait(gCtx); err != nil {
				results[i] = Result{Target: target, Err: &Error{URL: target.URL, Message: "not checked", Cause: err}}
				return err
			}
			results[i] = c.Check(gCtx, target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("link check interrupted: %w", err)
	}
	return results, nil
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, nil
}

func headRejected(status int) bool {
	switch status {
	case http.StatusMethodNotAllowed, http.StatusNotImplemented, http.StatusForbidden:
		return true
	default:
		return false
	}
}
