package ports

import "context"

// HealthChecker is a dependency the readiness probe can ask about, such as
// the remote time source.
type HealthChecker interface {
	// Name keys the checker's entry in readiness output.
	Name() string
	// HealthCheck returns nil when the dependency can serve clock reads.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry runs every registered checker for GET /health/ready.
type HealthRegistry interface {
	// Register adds checker, replacing any checker with the same name.
	Register(checker HealthChecker)
	// CheckAll maps each checker name to its result; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
