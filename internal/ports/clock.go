package ports

import (
	"context"
	"time"
)

// Clock is the source of "now" for the application layer. Implemented by the
// system clock adapter and by the remote time source client.
type Clock interface {
	// Now returns the current instant. Remote implementations may fail;
	// callers decide whether to fall back.
	Now(ctx context.Context) (time.Time, error)
}
