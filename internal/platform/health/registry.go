// Package health keeps the set of dependency checks behind the readiness
// probe.
package health

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jsamuelsen11/period-service/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout bounds each individual check. Zero leaves checks bounded
// only by the caller's context.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) { r.timeout = d }
}

// Registry holds checkers by name. Registering a second checker under an
// existing name replaces the first.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]ports.HealthChecker
	timeout  time.Duration
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{checkers: make(map[string]ports.HealthChecker)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds checker under checker.Name().
func (r *Registry) Register(checker ports.HealthChecker) {
	name := checker.Name()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// CheckAll runs every check concurrently and returns the results by name.
// A nil value means healthy.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := maps.Clone(r.checkers)
	r.mu.RUnlock()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]error, len(checkers))
	)
	for name, c := range checkers {
		wg.Go(func() {
			err := r.check(ctx, c)
			mu.Lock()
			results[name] = err
			mu.Unlock()
		})
	}
	wg.Wait()
	return results
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return c.HealthCheck(ctx)
}
