// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/period-service/internal/app/fanout"
	"github.com/jsamuelsen11/period-service/internal/domain"
	"github.com/jsamuelsen11/period-service/internal/domain/period"
	"github.com/jsamuelsen11/period-service/internal/platform/config"
	"github.com/jsamuelsen11/period-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/period-service/internal/ports"
)

// Compile-time check that PeriodService implements ports.PeriodService.
var _ ports.PeriodService = (*PeriodService)(nil)

// Operation names used in logs and metrics.
const (
	opRelative = "relative"
	opCreate   = "create"
	opSteps    = "steps"
	opBatch    = "batch"
)

// Metric result labels.
const (
	resultSuccess = "success"
	resultInvalid = "invalid"
	resultError   = "error"
)

// namedClock is implemented by clocks that can identify themselves, such as
// the remote time source client.
type namedClock interface {
	Name() string
}

// PeriodService implements ports.PeriodService. It resolves "now" through
// the Clock port, applies the configured defaults, and delegates period
// arithmetic to the domain package.
type PeriodService struct {
	clock     ports.Clock
	clockName string
	cfg       config.PeriodConfig
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

// NewPeriodService creates a PeriodService. A nil metrics disables metric
// recording and a nil logger discards log output.
func NewPeriodService(clock ports.Clock, cfg config.PeriodConfig, metrics *telemetry.Metrics, logger *slog.Logger) *PeriodService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	name := config.ClockSourceSystem
	if nc, ok := clock.(namedClock); ok {
		name = nc.Name()
	}

	return &PeriodService{
		clock:     clock,
		clockName: name,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger,
	}
}

// Relative builds a period relative to now in the requested unit.
func (s *PeriodService) Relative(ctx context.Context, req ports.RelativeRequest) (*period.Period, error) {
	s.logger.InfoContext(ctx, "building relative period",
		slog.String("unit", req.Unit),
		slog.Int("start_offset", req.StartOffset),
		slog.Int("end_offset", req.EndOffset),
	)

	p, err := s.relative(ctx, req)
	s.record(ctx, opRelative, err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PeriodService) relative(ctx context.Context, req ports.RelativeRequest) (*period.Period, error) {
	unit, err := period.ParseUnit(req.Unit)
	if err != nil {
		return nil, err
	}

	opts, err := s.options(req.Options)
	if err != nil {
		return nil, err
	}

	p, err := s.factory(ctx).Relative(unit, req.StartOffset, req.EndOffset, opts...)
	if err != nil {
		return nil, err
	}
	return postProcess(p, req.Options)
}

// Create builds a period from date text.
func (s *PeriodService) Create(ctx context.Context, req ports.CreateRequest) (*period.Period, error) {
	s.logger.InfoContext(ctx, "creating period",
		slog.String("start", req.Start),
		slog.String("end", req.End),
	)

	p, err := s.create(s.factory(ctx), req)
	s.record(ctx, opCreate, err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PeriodService) create(f *period.Factory, req ports.CreateRequest) (*period.Period, error) {
	opts, err := s.options(req.Options)
	if err != nil {
		return nil, err
	}

	p, err := f.Create(req.Start, req.End, opts...)
	if err != nil {
		return nil, err
	}
	return postProcess(p, req.Options)
}

// Steps builds a period and subdivides it. A non-zero Steps takes precedence
// over Interval and Scale.
func (s *PeriodService) Steps(ctx context.Context, req ports.StepsRequest) (*ports.StepsResult, error) {
	s.logger.InfoContext(ctx, "subdividing period",
		slog.String("start", req.Start),
		slog.String("end", req.End),
		slog.Int("steps", req.Steps),
		slog.Int("interval", req.Interval),
		slog.String("scale", req.Scale),
	)

	res, err := s.steps(ctx, req)
	s.record(ctx, opSteps, err)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PeriodStepPoints.Record(ctx, int64(len(res.Points)))
	}
	return res, nil
}

func (s *PeriodService) steps(ctx context.Context, req ports.StepsRequest) (*ports.StepsResult, error) {
	p, err := s.create(s.factory(ctx), req.CreateRequest)
	if err != nil {
		return nil, err
	}

	var seq iter.Seq[time.Time]
	switch {
	case req.Steps != 0:
		seq, err = p.BySteps(req.Steps)
	case req.Interval != 0 || req.Scale != "":
		seq, err = p.ByStepString(req.Interval, req.Scale)
	default:
		return nil, &domain.ValidationError{Fields: map[string]string{
			"steps": "steps, or interval and scale, " + domain.MsgRequired,
		}}
	}
	if err != nil {
		return nil, err
	}

	points, truncated := period.Collect(seq, s.cfg.MaxSteps)
	if truncated {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"steps": fmt.Sprintf("produces more than %d points", s.cfg.MaxSteps),
		}}
	}

	return &ports.StepsResult{Period: p, Points: points}, nil
}

// Batch creates every requested period concurrently. All items share a single
// reading of "now" so that open-ended periods line up.
func (s *PeriodService) Batch(ctx context.Context, reqs []ports.CreateRequest) (*ports.BatchResult, error) {
	s.logger.InfoContext(ctx, "creating period batch", slog.Int("count", len(reqs)))

	res, err := s.batch(ctx, reqs)
	s.record(ctx, opBatch, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *PeriodService) batch(ctx context.Context, reqs []ports.CreateRequest) (*ports.BatchResult, error) {
	switch {
	case len(reqs) == 0:
		return nil, &domain.ValidationError{Fields: map[string]string{"items": domain.MsgRequired}}
	case len(reqs) > s.cfg.MaxBatch:
		return nil, &domain.ValidationError{Fields: map[string]string{
			"items": fmt.Sprintf("must contain at most %d items", s.cfg.MaxBatch),
		}}
	}

	f := s.factory(ctx)
	results := fanout.Run(ctx, s.cfg.BatchWorkers, reqs, func(_ context.Context, req ports.CreateRequest) (*period.Period, error) {
		return s.create(f, req)
	})

	periods, failures := fanout.Split(results)
	res := &ports.BatchResult{Periods: periods}
	for _, fail := range failures {
		s.logger.DebugContext(ctx, "batch item rejected",
			slog.Int("index", fail.Index),
			slog.Any("error", fail.Err),
		)
		res.Errors = append(res.Errors, ports.BatchError{Index: fail.Index, Err: fail.Err})
	}
	return res, nil
}

// factory returns a period factory frozen at the current clock reading.
func (s *PeriodService) factory(ctx context.Context) *period.Factory {
	return period.NewFactory(period.FixedClock(s.now(ctx)))
}

// now reads the configured clock. When the clock fails the system time is
// used instead, in UTC like the system clock adapter, and the fallback is
// logged and counted.
func (s *PeriodService) now(ctx context.Context) time.Time {
	t, err := s.clock.Now(ctx)
	if err == nil {
		return t
	}

	s.logger.WarnContext(ctx, "clock unavailable, using system time",
		slog.String("clock", s.clockName),
		slog.Any("error", err),
	)
	if s.metrics != nil {
		s.metrics.ClockFallbackTotal.Add(ctx, 1,
			metric.WithAttributes(telemetry.AttrClockSource.String(s.clockName)))
	}
	return time.Now().UTC()
}

// options turns request options into period options, falling back to the
// configured defaults. The timezone label must name a loadable zone.
func (s *PeriodService) options(o ports.PeriodOptions) ([]period.Option, error) {
	tz := cmp.Or(o.Timezone, s.cfg.Timezone, period.DefaultTimezone)
	if _, err := period.LoadLocation("timezone", tz); err != nil {
		return nil, err
	}

	return []period.Option{
		period.WithTimezone(tz),
		period.WithOutputFormat(cmp.Or(o.OutputFormat, s.cfg.OutputFormat)),
	}, nil
}

// postProcess applies timezone reinterpretation and clamping, in that order,
// then re-checks ordering since clamping does not.
func postProcess(p *period.Period, o ports.PeriodOptions) (*period.Period, error) {
	if o.ToTimezone != "" || o.FromTimezone != "" {
		if _, err := p.ToTimezone(cmp.Or(o.ToTimezone, "UTC"), cmp.Or(o.FromTimezone, "UTC")); err != nil {
			return nil, err
		}
	}

	if o.LimitStart != nil {
		p.LimitStartDate(*o.LimitStart)
	}
	if o.LimitEnd != nil {
		p.LimitEndDate(*o.LimitEnd)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// record logs failures and counts the operation by result.
func (s *PeriodService) record(ctx context.Context, op string, err error) {
	result := resultSuccess
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		result = resultInvalid
		s.logger.WarnContext(ctx, "period request rejected",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	default:
		result = resultError
		s.logger.ErrorContext(ctx, "period operation failed",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}

	if s.metrics == nil {
		return
	}
	s.metrics.PeriodOperationsTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrOperation.String(op),
		telemetry.AttrResult.String(result),
	))
}
