// Package clock provides the local implementation of ports.Clock.
package clock

import (
	"context"
	"time"

	"github.com/jsamuelsen11/period-service/internal/ports"
)

var _ ports.Clock = System{}

// System reads the host clock. It never fails.
type System struct{}

// Now returns time.Now in UTC.
func (System) Now(context.Context) (time.Time, error) {
	return time.Now().UTC(), nil
}
