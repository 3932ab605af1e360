package period_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/period-service/internal/domain"
	"github.com/jsamuelsen11/period-service/internal/domain/period"
)

func collect(t *testing.T, p *period.Period, steps int) []time.Time {
	t.Helper()
	seq, err := p.BySteps(steps)
	require.NoError(t, err)
	points, truncated := period.Collect(seq, 0)
	require.False(t, truncated)
	return points
}

func requireSpacing(t *testing.T, points []time.Time, want time.Duration) {
	t.Helper()
	for i := 1; i < len(points); i++ {
		assert.Equal(t, want, points[i].Sub(points[i-1]), "gap before point %d", i)
	}
}

func TestByStep_IncludesExactEnd(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan1.Add(time.Hour))
	seq, err := p.ByStep(15, period.Minutes)
	require.NoError(t, err)

	points, _ := period.Collect(seq, 0)
	require.Len(t, points, 5)
	assert.True(t, points[0].Equal(jan1))
	assert.True(t, points[4].Equal(jan1.Add(time.Hour)))
	requireSpacing(t, points, 15*time.Minute)
}

func TestByStep_ExcludesOvershoot(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan1.Add(50*time.Minute))
	seq, err := p.ByStepString(20, "minute")
	require.NoError(t, err)

	points, _ := period.Collect(seq, 0)
	require.Len(t, points, 3)
	assert.True(t, points[2].Equal(jan1.Add(40*time.Minute)))
}

func TestByStep_IsRestartable(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan2)
	seq, err := p.ByStep(6, period.Hours)
	require.NoError(t, err)

	first, _ := period.Collect(seq, 0)
	second, _ := period.Collect(seq, 0)
	assert.Equal(t, first, second)
	assert.Len(t, first, 5)
}

func TestByStep_StopsEarly(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan2)
	seq, err := p.ByStep(1, period.Seconds)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestByStep_MonthsDoNotDrift(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	p := mustNew(t, start, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))

	seq, err := p.ByStep(1, period.Months)
	require.NoError(t, err)
	points, _ := period.Collect(seq, 0)

	// Jan 31 + 1 month normalizes to Mar 2 (leap year), + 2 months is Mar 31.
	require.Len(t, points, 3)
	assert.True(t, points[1].Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, points[2].Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestByStep_InvalidArguments(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan2)

	for _, interval := range []int{0, -5} {
		_, err := p.ByStep(interval, period.Minutes)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "interval %d", interval)
	}

	_, err := p.ByStep(1, period.Unit("lightyears"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = p.ByStepString(1, "eons")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestByStep_CorruptedPeriodYieldsNothing(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan2)
	p.LimitStartDate(jan2.Add(time.Hour))

	seq, err := p.ByStep(1, period.Hours)
	require.NoError(t, err)
	points, _ := period.Collect(seq, 0)
	assert.Empty(t, points)
}

func TestBySteps_EvenSpan(t *testing.T) {
	t.Parallel()

	// 4 steps of 15 seconds.
	p := mustNew(t, jan1, jan1.Add(60*time.Second))
	points := collect(t, p, 4)

	require.Len(t, points, 5, "both endpoints are included")
	assert.True(t, points[0].Equal(jan1))
	assert.True(t, points[4].Equal(p.End()))
	requireSpacing(t, points, 15*time.Second)
}

func TestBySteps_UnevenSpan(t *testing.T) {
	t.Parallel()

	// 10s / 3 rounds up to 4s: 0, 4, 8.
	p := mustNew(t, jan1, jan1.Add(10*time.Second))
	points := collect(t, p, 3)

	require.Len(t, points, 3)
	requireSpacing(t, points, 4*time.Second)
	assert.True(t, points[2].Before(p.End()))

	interval, err := p.StepInterval(3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), interval)
}

func TestBySteps_SpanLongerThanDuration(t *testing.T) {
	t.Parallel()

	start := time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	p := mustNew(t, start, end)
	span := end.Unix() - start.Unix()

	interval, err := p.StepInterval(1)
	require.NoError(t, err)
	assert.Equal(t, span, interval)

	points := collect(t, p, 1)
	require.Len(t, points, 2)
	assert.True(t, points[0].Equal(start))
	assert.True(t, points[1].Equal(end))

	points = collect(t, p, 2)
	require.Len(t, points, 3)
	assert.True(t, points[0].Equal(start))
	assert.Equal(t, start.Unix()+span/2, points[1].Unix())
	assert.True(t, points[2].Equal(end))
}

func TestByStep_HugeIntervalYieldsStartOnly(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan2)

	for _, unit := range period.Units() {
		seq, err := p.ByStep(1<<62, unit)
		require.NoError(t, err)

		points, truncated := period.Collect(seq, 5)
		assert.False(t, truncated, unit.String())
		require.Len(t, points, 1, unit.String())
		assert.True(t, points[0].Equal(jan1), unit.String())
	}
}

func TestByStep_FiniteWithoutLimit(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan2)
	seq, err := p.ByStep(math.MaxInt/2+1, period.Seconds)
	require.NoError(t, err)

	points, truncated := period.Collect(seq, 0)
	assert.False(t, truncated)
	assert.Len(t, points, 1)
}

func TestBySteps_ZeroLengthPeriod(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan1)
	points := collect(t, p, 10)

	require.Len(t, points, 1)
	assert.True(t, points[0].Equal(jan1))
}

func TestBySteps_NonPositiveSteps(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan2)

	for _, steps := range []int{0, -1} {
		seq, err := p.BySteps(steps)
		assert.Nil(t, seq)

		var aerr *domain.InvalidArgumentError
		require.ErrorAs(t, err, &aerr, "steps %d", steps)
		assert.Equal(t, "steps", aerr.Argument)
	}
}

func TestCollect_Limit(t *testing.T) {
	t.Parallel()

	p := mustNew(t, jan1, jan2)
	seq, err := p.ByStep(1, period.Hours)
	require.NoError(t, err)

	points, truncated := period.Collect(seq, 10)
	assert.Len(t, points, 10)
	assert.True(t, truncated)

	points, truncated = period.Collect(seq, 25)
	assert.Len(t, points, 25)
	assert.False(t, truncated)
}
