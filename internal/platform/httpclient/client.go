// Package httpclient is the outbound HTTP client shared by adapters that
// call remote services, such as the remote time source.
//
// Each request passes through a circuit breaker, an optional rate limiter, a
// client span and a retry loop, in that order:
//
//	client := httpclient.New(&cfg.Clock.Client, "timesource", metrics, logger)
//	resp, err := client.Get(ctx, "/api/timezone/Etc/UTC")
//
// The inbound request ID travels with the context:
//
//	ctx = httpclient.WithRequestID(ctx, id)
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/period-service/internal/platform/config"
	"github.com/jsamuelsen11/period-service/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/period-service/internal/platform/httpclient"

// Outcome labels for http.client.request.* metrics.
const (
	outcomeSuccess     = "success"
	outcomeError       = "error"
	outcomeCircuitOpen = "circuit_open"
)

type requestIDKey struct{}

// WithRequestID stores the inbound request ID so outbound calls carry it in
// the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client sends requests to one named downstream service.
type Client struct {
	http    *http.Client
	baseURL string
	name    string
	breaker *gobreaker.CircuitBreaker[*http.Response]
	limiter *rate.Limiter
	policy  retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds a Client for the downstream identified by name. Metrics may be
// nil.
func New(cfg *config.ClientConfig, name string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		name:    name,
		breaker: newBreaker(name, cfg.CircuitBreaker, logger),
		limiter: newLimiter(cfg.RateLimit),
		policy:  newRetryPolicy(cfg.Retry),
		metrics: metrics,
		logger:  logger,
	}
}

func newBreaker(name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[*http.Response] {
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: clampUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int64(counts.ConsecutiveFailures) >= int64(cfg.MaxFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// newLimiter returns nil when rate limiting is disabled.
func newLimiter(cfg config.RateLimitConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.BurstSize, 1))
}

// Do sends req. A response whose status stayed retryable after the last
// attempt is returned together with an error; the caller closes the body in
// both cases. Breaker rejections and transport failures return a nil
// response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%s: rate limit: %w", c.name, err)
			}
		}
		return c.traced(ctx, req)
	})

	c.observe(ctx, req.Method, time.Since(start), resp, err)
	return resp, err
}

// Get requests path relative to the configured base URL, asking for JSON.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	target, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("building URL for %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// Name identifies the downstream in health reports, spans and metrics.
func (c *Client) Name() string {
	return c.name
}

// HealthCheck maps the breaker state to a health result without touching
// the network.
func (c *Client) HealthCheck(_ context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.name)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.name)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.name, state)
	}
}

// traced wraps the retry loop in a client span and stamps the outbound
// headers.
func (c *Client) traced(ctx context.Context, req *http.Request) (*http.Response, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "HTTP "+req.Method+" "+c.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
			telemetry.AttrPeerService.String(c.name),
		),
	)
	defer span.End()

	req = req.WithContext(ctx)
	if id := requestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.send(ctx, req)
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

// observe records client metrics outside the breaker so rejected calls are
// counted too.
func (c *Client) observe(ctx context.Context, method string, elapsed time.Duration, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	status := 0
	outcome := outcomeError
	if resp != nil {
		status = resp.StatusCode
		if status < http.StatusBadRequest {
			outcome = outcomeSuccess
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		outcome = outcomeCircuitOpen
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.name),
		telemetry.AttrResult.String(outcome),
	)
	c.metrics.ClientRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

func clampUint32(v int) uint32 {
	return uint32(min(max(int64(v), 0), math.MaxUint32))
}
