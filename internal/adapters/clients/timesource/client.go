package timesource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/period-service/internal/domain"
	"github.com/jsamuelsen11/period-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/period-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Clock         = (*Client)(nil)
	_ ports.HealthChecker = (*Client)(nil)
)

// Client reads "now" from a remote time API. Every call goes through the
// instrumented [httpclient.Client], which adds retries, circuit breaking,
// rate limiting and tracing.
type Client struct {
	http   *httpclient.Client
	path   string
	logger *slog.Logger
}

// New creates a Client that issues GET requests for path relative to the
// HTTP client's base URL.
func New(client *httpclient.Client, path string, logger *slog.Logger) *Client {
	return &Client{http: client, path: path, logger: logger}
}

// Now fetches the current instant. Every failure wraps domain.ErrUnavailable.
func (c *Client) Now(ctx context.Context) (time.Time, error) {
	resp, err := c.http.Get(ctx, c.path)
	if err != nil {
		// Retries exhausted on a retryable status still hand back the
		// response; report the status rather than the retry error.
		if resp != nil {
			defer c.closeBody(ctx, resp)
			if resp.StatusCode != http.StatusOK {
				return time.Time{}, TranslateHTTPError(resp)
			}
		}
		c.logger.ErrorContext(ctx, "time source request failed",
			slog.String("path", c.path),
			slog.String("error", err.Error()),
		)
		return time.Time{}, fmt.Errorf("GET %s: %w: %w", c.path, domain.ErrUnavailable, err)
	}
	defer c.closeBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "unexpected time source status",
			slog.String("path", c.path),
			slog.Int("status", resp.StatusCode),
		)
		return time.Time{}, TranslateHTTPError(resp)
	}

	var dto timeResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return time.Time{}, fmt.Errorf("decoding time source response: %w: %w", domain.ErrUnavailable, err)
	}

	t, err := toInstant(dto)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return t, nil
}

// Name identifies the time source in health reports and clock metrics. It
// matches the service name of the underlying HTTP client.
func (c *Client) Name() string {
	return c.http.Name()
}

// HealthCheck reports the circuit breaker state of the underlying client
// without making a network call.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}
