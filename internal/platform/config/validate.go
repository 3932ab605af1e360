package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Period.validate(),
		c.Clock.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (p *PeriodConfig) validate() error {
	var errs []error

	if _, err := time.LoadLocation(p.Timezone); err != nil || p.Timezone == "" {
		errs = append(errs, fmt.Errorf("period.timezone must be a known IANA zone, got %q", p.Timezone))
	}
	if strings.TrimSpace(p.OutputFormat) == "" {
		errs = append(errs, errors.New("period.output_format must not be empty"))
	}
	if p.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("period.max_steps must be >= 0, got %d", p.MaxSteps))
	}
	if p.MaxBatch < 1 {
		errs = append(errs, fmt.Errorf("period.max_batch must be >= 1, got %d", p.MaxBatch))
	}
	if p.BatchWorkers < 1 {
		errs = append(errs, fmt.Errorf("period.batch_workers must be >= 1, got %d", p.BatchWorkers))
	}

	return errors.Join(errs...)
}

func (c *ClockConfig) validate() error {
	switch c.Source {
	case ClockSourceSystem:
		return nil
	case ClockSourceRemote:
		// Checked below.
	default:
		return fmt.Errorf("clock.source must be one of: system, remote; got %q", c.Source)
	}

	var errs []error
	if !strings.HasPrefix(c.Path, "/") {
		errs = append(errs, fmt.Errorf("clock.path must start with /, got %q", c.Path))
	}
	errs = append(errs, c.Client.validate("clock.client"))

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate(prefix string) error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s.base_url must not be empty", prefix))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", prefix))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s.retry.max_attempts must be >= 1, got %d", prefix, cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("%s.retry.multiplier must be positive, got %f", prefix, cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
			prefix, cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.requests_per_second must be >= 0, got %f",
			prefix, cl.RateLimit.RequestsPerSecond))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.burst_size must be >= 1 when rate limiting is on, got %d",
			prefix, cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}
	if t.ServiceName == "" {
		errs = append(errs, errors.New("telemetry.service_name must not be empty when telemetry is enabled"))
	}

	return errors.Join(errs...)
}
