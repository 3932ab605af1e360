package config

const (
	defaultServerPort = 8080

	defaultMaxSteps     = 10000
	defaultMaxBatch     = 100
	defaultBatchWorkers = 8

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRateLimitBurst = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"period.timezone":      "UTC",
		"period.output_format": "2006-01-02 15:04:05",
		"period.max_steps":     defaultMaxSteps,
		"period.max_batch":     defaultMaxBatch,
		"period.batch_workers": defaultBatchWorkers,

		"clock.source":                                 ClockSourceSystem,
		"clock.path":                                   "/api/timezone/Etc/UTC",
		"clock.client.base_url":                        "http://worldtimeapi.org",
		"clock.client.timeout":                         "2s",
		"clock.client.retry.max_attempts":              defaultRetryMaxAttempts,
		"clock.client.retry.initial_interval":          "100ms",
		"clock.client.retry.max_interval":              "1s",
		"clock.client.retry.multiplier":                defaultRetryMultiplier,
		"clock.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"clock.client.circuit_breaker.timeout":         "30s",
		"clock.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"clock.client.rate_limit.requests_per_second":  0,
		"clock.client.rate_limit.burst_size":           defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "period-service",
	}
}
