package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jsamuelsen11/period-service/internal/platform/config"
	"github.com/jsamuelsen11/period-service/internal/platform/logging"
)

// jitterFraction spreads each delay by up to ±25%.
const jitterFraction = 0.25

// retryPolicy is the exponential backoff schedule for one client.
type retryPolicy struct {
	attempts   int
	initial    time.Duration
	ceiling    time.Duration
	multiplier float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		attempts:   cfg.MaxAttempts,
		initial:    cfg.InitialInterval,
		ceiling:    cfg.MaxInterval,
		multiplier: cfg.Multiplier,
	}
}

// delay returns the wait before retry n, where n=1 is the first retry.
func (p retryPolicy) delay(n int) time.Duration {
	d := float64(p.initial) * math.Pow(p.multiplier, float64(n-1))
	d = min(d, float64(p.ceiling))
	d += d * jitterFraction * (2*rand.Float64() - 1) //nolint:gosec // jitter does not need a CSPRNG
	return time.Duration(max(d, 0))
}

// send runs the attempts for req. Requests whose body cannot be rewound get
// a single attempt.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	attempts := c.policy.attempts
	if attempts < 1 {
		return nil, fmt.Errorf("httpclient: max attempts must be >= 1, got %d", attempts)
	}
	if !replayable(req) {
		attempts = 1
	}

	var lastErr error
	for n := range attempts {
		if n > 0 {
			if err := c.pause(ctx, req, n, lastErr); err != nil {
				return nil, err
			}
			if err := rewind(req); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req)
		switch {
		case err != nil:
			if !retryableErr(err) {
				return nil, err
			}
			lastErr = err
		case !retryableStatus(resp.StatusCode):
			return resp, nil
		case n == attempts-1:
			return resp, fmt.Errorf("%s: HTTP %d after %d attempts", c.name, resp.StatusCode, attempts)
		default:
			lastErr = fmt.Errorf("%s: HTTP %d", c.name, resp.StatusCode)
			discard(resp)
		}
	}
	return nil, lastErr
}

// pause logs the upcoming retry and sleeps for its backoff delay.
func (c *Client) pause(ctx context.Context, req *http.Request, n int, cause error) error {
	wait := c.policy.delay(n)

	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.name),
		slog.Int("attempt", n+1),
		slog.Int("max_attempts", c.policy.attempts),
		slog.Duration("backoff", wait),
		slog.Any("error", cause),
	)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

func rewind(req *http.Request) error {
	if req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}
	req.Body = body
	return nil
}

// discard drains resp so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// retryableErr reports whether a transport error is worth another attempt.
// Cancellation and deadline expiry are final.
func retryableErr(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// retryableStatus is true for 429 and every 5xx.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
