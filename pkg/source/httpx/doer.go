package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blackthreadai/wildcatter/pkg/log"
	"github.com/blackthreadai/wildcatter/pkg/metrics"
)

// Policy controls retry behavior. Zero-value Policy is not usable —
// callers should start from DefaultPolicy().
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// BaseDelay multiplied by the attempt number (1-indexed) between
	// retries, except after a 429 which always sleeps RateLimitSleep.
	BaseDelay time.Duration
	// RateLimitSleep is the fixed sleep after an HTTP 429 response.
	RateLimitSleep time.Duration
	// Timeout bounds a single request attempt, not the whole retry loop.
	Timeout time.Duration
}

// DefaultPolicy matches spec for small/medium queries: 3 attempts,
// 2s×attempt backoff, 60s on rate limit, 30s per-attempt timeout.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		BaseDelay:      2 * time.Second,
		RateLimitSleep: 60 * time.Second,
		Timeout:        30 * time.Second,
	}
}

// BulkPolicy is for multi-GB file downloads: fewer retries, much
// longer per-attempt timeout.
func BulkPolicy() Policy {
	p := DefaultPolicy()
	p.MaxAttempts = 2
	p.Timeout = 30 * time.Minute
	return p
}

// Doer wraps an *http.Client with Policy's retry semantics. component
// is used only for logging and metrics labels (e.g. "source.tx_rrc").
type Doer struct {
	client    *http.Client
	policy    Policy
	component string
}

// New builds a Doer. client may be nil, in which case http.DefaultClient
// is used (per-attempt timeout is still enforced via context, not
// client.Timeout, so a shared client can be reused across components).
func New(component string, policy Policy, client *http.Client) *Doer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Doer{client: client, policy: policy, component: component}
}

// Do executes req, retrying transient failures and 5xx/429 responses
// per policy. req.Body, if any, must be re-creatable via bodyFn on
// each attempt since an *http.Request's body can only be read once.
func (d *Doer) Do(ctx context.Context, method, url string, bodyFn func() io.Reader, headers map[string]string) (*http.Response, error) {
	logger := log.WithComponent(d.component)
	var lastErr error

	for attempt := 1; attempt <= d.policy.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, d.policy.Timeout)

		var body io.Reader
		if bodyFn != nil {
			body = bodyFn()
		}
		req, err := http.NewRequestWithContext(attemptCtx, method, url, body)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := d.client.Do(req)
		if err != nil {
			cancel()
			lastErr = err
			metrics.HTTPRetriesTotal.WithLabelValues(d.component).Inc()
			logger.Warn().Err(err).Int("attempt", attempt).Str("url", url).Msg("request failed, will retry")
			d.sleep(ctx, attempt, false)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			drainAndClose(resp)
			cancel()
			lastErr = fmt.Errorf("rate limited (429) on %s", url)
			metrics.HTTPRetriesTotal.WithLabelValues(d.component).Inc()
			logger.Warn().Int("attempt", attempt).Str("url", url).Msg("rate limited, sleeping")
			d.sleep(ctx, attempt, true)
			continue
		}

		if resp.StatusCode >= 500 {
			drainAndClose(resp)
			cancel()
			lastErr = fmt.Errorf("server error %d on %s", resp.StatusCode, url)
			metrics.HTTPRetriesTotal.WithLabelValues(d.component).Inc()
			logger.Warn().Int("status", resp.StatusCode).Int("attempt", attempt).Str("url", url).Msg("server error, will retry")
			d.sleep(ctx, attempt, false)
			continue
		}

		// Success or a non-retryable client error (4xx other than 429) —
		// caller decides what to do with the status code. cancel() is
		// deliberately deferred by the caller draining resp.Body; leaking
		// the context here would cancel the body mid-read, so we tie
		// cancellation to the response body close via a wrapper.
		resp.Body = &cancelOnCloseBody{ReadCloser: resp.Body, cancel: cancel}
		return resp, nil
	}

	return nil, fmt.Errorf("exhausted %d attempts: %w", d.policy.MaxAttempts, lastErr)
}

func (d *Doer) sleep(ctx context.Context, attempt int, rateLimited bool) {
	delay := time.Duration(attempt) * d.policy.BaseDelay
	if rateLimited {
		delay = d.policy.RateLimitSleep
	}
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// cancelOnCloseBody cancels the per-attempt context when the caller
// finishes reading the response, instead of leaking it until ctx's
// parent is canceled.
type cancelOnCloseBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnCloseBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// BytesBody returns a bodyFn that replays the same byte slice on every
// attempt — the common case for JSON/form POST bodies.
func BytesBody(b []byte) func() io.Reader {
	return func() io.Reader {
		if b == nil {
			return nil
		}
		return bytes.NewReader(b)
	}
}
