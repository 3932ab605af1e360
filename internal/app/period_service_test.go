package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/period-service/internal/domain"
	"github.com/jsamuelsen11/period-service/internal/platform/config"
	"github.com/jsamuelsen11/period-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/period-service/internal/ports"
	"github.com/jsamuelsen11/period-service/mocks"
)

var fixedNow = time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testPeriodConfig() config.PeriodConfig {
	return config.PeriodConfig{
		Timezone:     "UTC",
		OutputFormat: "2006-01-02 15:04:05",
		MaxSteps:     100,
		MaxBatch:     5,
		BatchWorkers: 2,
	}
}

func fixedClock(t *testing.T) *mocks.MockClock {
	t.Helper()
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now(mock.Anything).Return(fixedNow, nil)
	return clock
}

func newTestService(t *testing.T) *PeriodService {
	t.Helper()
	return NewPeriodService(fixedClock(t), testPeriodConfig(), nil, discardLogger())
}

func timePtr(t time.Time) *time.Time { return &t }

// --- NewPeriodService ---

func TestNewPeriodService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewPeriodService(mocks.NewMockClock(t), testPeriodConfig(), nil, nil)
	require.NotNil(t, svc.logger)
	assert.Equal(t, config.ClockSourceSystem, svc.clockName)
}

// --- Relative ---

func TestPeriodService_Relative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       ports.RelativeRequest
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "last seven days",
			req:       ports.RelativeRequest{Unit: "days", StartOffset: 7},
			wantStart: fixedNow.AddDate(0, 0, -7),
			wantEnd:   fixedNow,
		},
		{
			name:      "singular unit with future end",
			req:       ports.RelativeRequest{Unit: "hour", StartOffset: 2, EndOffset: 1},
			wantStart: fixedNow.Add(-2 * time.Hour),
			wantEnd:   fixedNow.Add(time.Hour),
		},
		{
			name: "clamped start",
			req: ports.RelativeRequest{
				Unit: "days", StartOffset: 30,
				Options: ports.PeriodOptions{LimitStart: timePtr(fixedNow.AddDate(0, 0, -3))},
			},
			wantStart: fixedNow.AddDate(0, 0, -3),
			wantEnd:   fixedNow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t)
			p, err := svc.Relative(context.Background(), tt.req)
			require.NoError(t, err)
			assert.True(t, p.Start().Equal(tt.wantStart), "start = %v, want %v", p.Start(), tt.wantStart)
			assert.True(t, p.End().Equal(tt.wantEnd), "end = %v, want %v", p.End(), tt.wantEnd)
		})
	}
}

func TestPeriodService_RelativeUnknownUnit(t *testing.T) {
	t.Parallel()

	svc := NewPeriodService(mocks.NewMockClock(t), testPeriodConfig(), nil, discardLogger())

	_, err := svc.Relative(context.Background(), ports.RelativeRequest{Unit: "fortnights", StartOffset: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestPeriodService_RelativeAppliesConfiguredDefaults(t *testing.T) {
	t.Parallel()

	cfg := testPeriodConfig()
	cfg.Timezone = "Europe/Paris"
	cfg.OutputFormat = "2006-01-02"
	svc := NewPeriodService(fixedClock(t), cfg, nil, discardLogger())

	p, err := svc.Relative(context.Background(), ports.RelativeRequest{Unit: "day", StartOffset: 1})
	require.NoError(t, err)

	assert.Equal(t, "Europe/Paris", p.Timezone())
	assert.Equal(t, "From: 2024-03-14, To: 2024-03-15", p.String())
}

// --- Create ---

func TestPeriodService_Create(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	p, err := svc.Create(context.Background(), ports.CreateRequest{
		Start: "2024-01-01",
		Options: ports.PeriodOptions{
			Timezone:     "Asia/Tokyo",
			OutputFormat: "02/01/2006",
		},
	})
	require.NoError(t, err)

	assert.True(t, p.Start().Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.End().Equal(fixedNow), "empty end resolves to the clock")
	assert.Equal(t, "Asia/Tokyo", p.Timezone())
	assert.Equal(t, "02/01/2006", p.OutputFormat())
}

func TestPeriodService_CreateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     ports.CreateRequest
		wantErr error
	}{
		{
			name:    "start after end",
			req:     ports.CreateRequest{Start: "2024-02-01", End: "2024-01-01"},
			wantErr: domain.ErrInvalidPeriod,
		},
		{
			name:    "malformed start",
			req:     ports.CreateRequest{Start: "not a date"},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "missing start",
			req:     ports.CreateRequest{End: "2024-01-01"},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name: "unknown timezone label",
			req: ports.CreateRequest{
				Start: "2024-01-01", End: "2024-01-02",
				Options: ports.PeriodOptions{Timezone: "Mars/Olympus"},
			},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name: "clamp inverts period",
			req: ports.CreateRequest{
				Start: "2024-01-01", End: "2024-01-02",
				Options: ports.PeriodOptions{LimitStart: timePtr(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))},
			},
			wantErr: domain.ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t)
			p, err := svc.Create(context.Background(), tt.req)
			assert.Nil(t, p)
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPeriodService_CreateReinterpretsTimezone(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	p, err := svc.Create(context.Background(), ports.CreateRequest{
		Start:   "2024-01-01 00:00:00",
		End:     "2024-01-01 12:00:00",
		Options: ports.PeriodOptions{FromTimezone: "America/New_York"},
	})
	require.NoError(t, err)

	// Wall clock read as New York time, rendered in UTC.
	assert.True(t, p.Start().Equal(time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)), "start = %v", p.Start())
	assert.True(t, p.End().Equal(time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)), "end = %v", p.End())
}

func TestPeriodService_ClockFailureFallsBackToSystemTime(t *testing.T) {
	t.Parallel()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now(mock.Anything).Return(time.Time{}, domain.ErrUnavailable)

	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	svc := NewPeriodService(clock, testPeriodConfig(), metrics, discardLogger())

	before := time.Now().Truncate(time.Second)
	p, err := svc.Create(context.Background(), ports.CreateRequest{Start: "2000-01-01"})
	require.NoError(t, err)
	assert.False(t, p.End().Before(before))
	assert.Equal(t, time.UTC, p.End().Location())

	assert.Equal(t, int64(1), sumCounter(t, reader, "period.clock.fallback.total"))
}

// --- Steps ---

func TestPeriodService_Steps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        ports.StepsRequest
		wantPoints int
	}{
		{
			name: "fixed number of steps",
			req: ports.StepsRequest{
				CreateRequest: ports.CreateRequest{Start: "2024-01-01 00:00:00", End: "2024-01-01 01:00:00"},
				Steps:         4,
			},
			wantPoints: 5,
		},
		{
			name: "interval and scale",
			req: ports.StepsRequest{
				CreateRequest: ports.CreateRequest{Start: "2024-01-01", End: "2024-01-02"},
				Interval:      6,
				Scale:         "hours",
			},
			wantPoints: 5,
		},
		{
			name: "steps win over interval",
			req: ports.StepsRequest{
				CreateRequest: ports.CreateRequest{Start: "2024-01-01", End: "2024-01-02"},
				Steps:         2,
				Interval:      1,
				Scale:         "minute",
			},
			wantPoints: 3,
		},
		{
			name: "interval longer than any period",
			req: ports.StepsRequest{
				CreateRequest: ports.CreateRequest{Start: "2024-01-01", End: "2024-01-02"},
				Interval:      1 << 62,
				Scale:         "minutes",
			},
			wantPoints: 1,
		},
		{
			name: "six centuries in one step",
			req: ports.StepsRequest{
				CreateRequest: ports.CreateRequest{Start: "1500-01-01", End: "2100-01-01"},
				Steps:         1,
			},
			wantPoints: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t)
			res, err := svc.Steps(context.Background(), tt.req)
			require.NoError(t, err)
			require.Len(t, res.Points, tt.wantPoints)
			assert.True(t, res.Points[0].Equal(res.Period.Start()))
		})
	}
}

func TestPeriodService_StepsErrors(t *testing.T) {
	t.Parallel()

	base := ports.CreateRequest{Start: "2024-01-01", End: "2024-01-02"}

	tests := []struct {
		name      string
		req       ports.StepsRequest
		wantField string
	}{
		{name: "nothing to step by", req: ports.StepsRequest{CreateRequest: base}, wantField: "steps"},
		{name: "too many points", req: ports.StepsRequest{CreateRequest: base, Interval: 1, Scale: "minutes"}, wantField: "steps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t)
			_, err := svc.Steps(context.Background(), tt.req)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestPeriodService_StepsInvalidArguments(t *testing.T) {
	t.Parallel()

	base := ports.CreateRequest{Start: "2024-01-01", End: "2024-01-02"}

	for _, req := range []ports.StepsRequest{
		{CreateRequest: base, Steps: -1},
		{CreateRequest: base, Interval: 0, Scale: "hours"},
		{CreateRequest: base, Interval: 1, Scale: "eons"},
	} {
		svc := newTestService(t)
		_, err := svc.Steps(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "request %+v", req)
	}
}

func TestPeriodService_StepsRecordsPointHistogram(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	svc := NewPeriodService(fixedClock(t), testPeriodConfig(), metrics, discardLogger())

	_, err = svc.Steps(context.Background(), ports.StepsRequest{
		CreateRequest: ports.CreateRequest{Start: "2024-01-01", End: "2024-01-02"},
		Steps:         4,
	})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	hist, ok := findMetric(rm, "period.steps.points").(metricdata.Histogram[int64])
	require.True(t, ok, "period.steps.points must be an int64 histogram")
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, int64(5), hist.DataPoints[0].Sum)
}

// --- Batch ---

func TestPeriodService_Batch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	res, err := svc.Batch(context.Background(), []ports.CreateRequest{
		{Start: "2024-01-01", End: "2024-01-02"},
		{Start: "2024-02-01", End: "2024-01-01"},
		{Start: "2024-03-01"},
	})
	require.NoError(t, err)

	require.Len(t, res.Periods, 3)
	assert.NotNil(t, res.Periods[0])
	assert.Nil(t, res.Periods[1])
	assert.True(t, res.Periods[2].End().Equal(fixedNow))

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.ErrorIs(t, res.Errors[0].Err, domain.ErrInvalidPeriod)
}

func TestPeriodService_BatchSharesOneClockReading(t *testing.T) {
	t.Parallel()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now(mock.Anything).Return(fixedNow, nil).Once()

	svc := NewPeriodService(clock, testPeriodConfig(), nil, discardLogger())

	res, err := svc.Batch(context.Background(), []ports.CreateRequest{
		{Start: "2024-01-01"},
		{Start: "2024-02-01"},
		{Start: "2024-03-01"},
	})
	require.NoError(t, err)
	for _, p := range res.Periods {
		assert.True(t, p.End().Equal(fixedNow))
	}
}

func TestPeriodService_BatchRequestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		reqs []ports.CreateRequest
	}{
		{name: "empty batch", reqs: nil},
		{name: "oversized batch", reqs: make([]ports.CreateRequest, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewPeriodService(mocks.NewMockClock(t), testPeriodConfig(), nil, discardLogger())
			res, err := svc.Batch(context.Background(), tt.reqs)
			assert.Nil(t, res)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "items")
		})
	}
}

// --- metrics ---

func TestPeriodService_RecordsOperationResults(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	svc := NewPeriodService(fixedClock(t), testPeriodConfig(), metrics, discardLogger())
	ctx := context.Background()

	_, err = svc.Relative(ctx, ports.RelativeRequest{Unit: "days", StartOffset: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ports.CreateRequest{Start: "2024-02-01", End: "2024-01-01"})
	require.Error(t, err)

	assert.Equal(t, int64(2), sumCounter(t, reader, "period.operations.total"))
}

func TestRecord_ClassifiesResults(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	svc := NewPeriodService(mocks.NewMockClock(t), testPeriodConfig(), metrics, discardLogger())
	ctx := context.Background()

	svc.record(ctx, opCreate, nil)
	svc.record(ctx, opCreate, &domain.ValidationError{Fields: map[string]string{"start": domain.MsgRequired}})
	svc.record(ctx, opCreate, errors.New("boom"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sum, ok := findMetric(rm, "period.operations.total").(metricdata.Sum[int64])
	require.True(t, ok)

	results := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(telemetry.AttrResult)
		results[v.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{resultSuccess: 1, resultInvalid: 1, resultError: 1}, results)
}

func findMetric(rm metricdata.ResourceMetrics, name string) metricdata.Aggregation {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}
	return nil
}

func sumCounter(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sum, ok := findMetric(rm, name).(metricdata.Sum[int64])
	require.True(t, ok, "%s must be an int64 sum", name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}
