package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// RetryConfig controls the backoff applied to outbound parser-service calls.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig is tuned for the synchronous upload path: the user is
// waiting on the response, so give up after three extra attempts.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  3,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     10 * time.Second,
	Multiplier:  2.0,
}

// RetryHTTP sends the request built by fn until it yields a usable response.
// Throttling (429) and server errors (5xx) are retried with exponential
// backoff, as are transient transport failures; anything else, including
// client errors like 400, goes straight back to the caller. The body of a
// discarded attempt is closed here.
func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, err := fn()
		switch {
		case err == nil && !retryableStatus(resp.StatusCode):
			return resp, nil
		case err == nil:
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d (%s)", resp.StatusCode, http.StatusText(resp.StatusCode))
		case transientNetErr(err):
			lastErr = err
		default:
			return nil, err
		}

		if attempt == rc.MaxRetries {
			break
		}
		wait := rc.backoff(attempt)
		slog.Debug("retrying http call",
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
			slog.Any("error", lastErr))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// backoff returns the wait before the next attempt, doubling (Multiplier)
// from InitialWait and capped at MaxWait.
func (rc RetryConfig) backoff(attempt int) time.Duration {
	wait := rc.InitialWait
	for i := 0; i < attempt; i++ {
		wait = time.Duration(float64(wait) * rc.Multiplier)
		if wait >= rc.MaxWait {
			return rc.MaxWait
		}
	}
	return wait
}

// transientNetErr reports whether err is the kind of transport failure a
// second attempt can fix: timeouts, refused connections, DNS hiccups.
// http.Client wraps these in *url.Error, so match with errors.As.
func transientNetErr(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// retryableStatus covers throttling and transient server-side failures.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
