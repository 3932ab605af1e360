package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/period-service/internal/adapters/clock"
)

func TestSystem_Now(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got, err := clock.System{}.Now(context.Background())
	after := time.Now()

	require.NoError(t, err)
	assert.False(t, got.Before(before.Truncate(time.Microsecond)))
	assert.False(t, got.After(after))
	assert.Equal(t, time.UTC, got.Location())
}
