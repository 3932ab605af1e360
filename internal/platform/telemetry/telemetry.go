// Package telemetry sets up OpenTelemetry tracing and metrics for the period
// service and defines the instruments the other packages record into.
//
//	providers, err := telemetry.Setup(ctx, cfg.Telemetry)
//	defer providers.Shutdown(ctx)
//	providers.Metrics.PeriodOperationsTotal.Add(ctx, 1, ...)
//
// Exporters are "stdout" for development and "otlp" (OTLP/HTTP) for
// deployed environments.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/jsamuelsen11/period-service/internal/platform/config"
)

// Exporter names accepted by InitTracer and InitMeter.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var (
	errUnsupportedExporter = errors.New("unsupported exporter")
	errEmptyEndpoint       = errors.New("otlp exporter requires an endpoint")
)

const instrumentationScope = "github.com/jsamuelsen11/period-service"

// Attribute keys shared by spans and metrics.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrOperation   = attribute.Key("period.operation")
	AttrClockSource = attribute.Key("period.clock_source")
)

// Metrics holds the service's instruments.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter

	// PeriodOperationsTotal counts PeriodService calls by operation and result.
	PeriodOperationsTotal metric.Int64Counter
	// PeriodStepPoints records how many points each subdivision produced.
	PeriodStepPoints metric.Int64Histogram
	// ClockFallbackTotal counts reads answered by the system clock after the
	// configured clock failed.
	ClockFallbackTotal metric.Int64Counter
}

// Providers owns the SDK providers created by Setup. With telemetry disabled
// every field is nil and the global no-op providers stay in place.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Setup installs global tracer and meter providers according to cfg and
// registers the service instruments.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}

	p := &Providers{}
	var err error
	if p.Tracer, err = InitTracer(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	if p.Meter, err = InitMeter(ctx, cfg.ServiceName, cfg.Exporter, cfg.Endpoint); err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}
	if p.Metrics, err = NewMetrics(p.Meter); err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}
	return p, nil
}

// Shutdown flushes whichever providers exist.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// InitTracer creates a TracerProvider, makes it global and installs the W3C
// trace-context and baggage propagators. The caller shuts it down.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var exp sdktrace.SpanExporter
	switch exporter {
	case ExporterOTLP:
		host, insecure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, fmt.Errorf("creating span exporter: %w", err)
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exp, err = otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating span exporter: %w", err)
		}
	case ExporterStdout:
		if exp, err = stdouttrace.New(stdouttrace.WithPrettyPrint()); err != nil {
			return nil, fmt.Errorf("creating span exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("creating span exporter: %w: %q", errUnsupportedExporter, exporter)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp), sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// InitMeter creates a MeterProvider with a periodic reader and makes it
// global. The caller shuts it down.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var exp sdkmetric.Exporter
	switch exporter {
	case ExporterOTLP:
		host, insecure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, fmt.Errorf("creating metric exporter: %w", err)
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exp, err = otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating metric exporter: %w", err)
		}
	case ExporterStdout:
		if exp, err = stdoutmetric.New(); err != nil {
			return nil, fmt.Errorf("creating metric exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("creating metric exporter: %w: %q", errUnsupportedExporter, exporter)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// NewMetrics registers every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	r := registrar{meter: mp.Meter(instrumentationScope)}

	m := &Metrics{
		ServerRequestDuration: r.seconds("http.server.request.duration", "Duration of incoming HTTP requests"),
		ServerRequestTotal:    r.counter("http.server.request.total", "Total number of incoming HTTP requests", "{request}"),
		ClientRequestDuration: r.seconds("http.client.request.duration", "Duration of outgoing HTTP requests"),
		ClientRequestTotal:    r.counter("http.client.request.total", "Total number of outgoing HTTP requests", "{request}"),
		PeriodOperationsTotal: r.counter("period.operations.total", "Total number of period operations", "{operation}"),
		PeriodStepPoints:      r.histogram("period.steps.points", "Number of points produced per subdivision", "{point}"),
		ClockFallbackTotal: r.counter("period.clock.fallback.total",
			"Clock reads answered by the system clock after the configured clock failed", "{read}"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// registrar creates instruments, accumulating failures so NewMetrics reports
// all of them at once.
type registrar struct {
	meter metric.Meter
	err   error
}

func (r *registrar) fail(name string, err error) {
	r.err = errors.Join(r.err, fmt.Errorf("creating %s: %w", name, err))
}

func (r *registrar) seconds(name, desc string) metric.Float64Histogram {
	h, err := r.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	if err != nil {
		r.fail(name, err)
	}
	return h
}

func (r *registrar) counter(name, desc, unit string) metric.Int64Counter {
	c, err := r.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		r.fail(name, err)
	}
	return c
}

func (r *registrar) histogram(name, desc, unit string) metric.Int64Histogram {
	h, err := r.meter.Int64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		r.fail(name, err)
	}
	return h
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)),
	)
}

// otlpTarget splits a collector URL such as http://otel-collector:4318 into
// the host:port the exporters expect and whether TLS is off. A bare
// host:port is passed through as insecure.
func otlpTarget(endpoint string) (host string, insecure bool, err error) {
	if endpoint == "" {
		return "", false, errEmptyEndpoint
	}
	u, perr := url.Parse(endpoint)
	if perr != nil || u.Host == "" {
		return endpoint, true, nil
	}
	return u.Host, u.Scheme != "https", nil
}
