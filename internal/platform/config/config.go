// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Period    PeriodConfig    `koanf:"period"`
	Clock     ClockConfig     `koanf:"clock"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// PeriodConfig holds the defaults and limits applied to period operations.
type PeriodConfig struct {
	// Timezone is the label given to periods when a request names none.
	Timezone string `koanf:"timezone"`
	// OutputFormat is the Go time layout used to render periods.
	OutputFormat string `koanf:"output_format"`
	// MaxSteps caps the points a single subdivision may produce. Zero
	// disables the cap.
	MaxSteps int `koanf:"max_steps"`
	// MaxBatch caps the number of items in one batch request.
	MaxBatch int `koanf:"max_batch"`
	// BatchWorkers bounds how many batch items are built concurrently.
	BatchWorkers int `koanf:"batch_workers"`
}

// Clock sources.
const (
	ClockSourceSystem = "system"
	ClockSourceRemote = "remote"
)

// ClockConfig selects where "now" comes from. The remote source reads a
// time API through the instrumented HTTP client.
type ClockConfig struct {
	Source string       `koanf:"source"`
	Path   string       `koanf:"path"`
	Client ClientConfig `koanf:"client"`
}

// ClientConfig holds downstream HTTP client settings.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side rate limiting settings. A zero
// RequestsPerSecond disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
