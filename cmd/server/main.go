// Package main runs the period HTTP service. APP_PROFILE selects the
// configuration profile (local, dev, prod); SIGINT or SIGTERM drains the
// server and flushes telemetry before exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/period-service/internal/adapters/clients/timesource"
	"github.com/jsamuelsen11/period-service/internal/adapters/clock"
	adapthttp "github.com/jsamuelsen11/period-service/internal/adapters/http"
	"github.com/jsamuelsen11/period-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/period-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/period-service/internal/app"
	"github.com/jsamuelsen11/period-service/internal/platform/config"
	"github.com/jsamuelsen11/period-service/internal/platform/health"
	"github.com/jsamuelsen11/period-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/period-service/internal/platform/logging"
	"github.com/jsamuelsen11/period-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/period-service/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	providers, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer flushTelemetry(providers, logger)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, providers.Metrics)
	registerDependencies(injector, cfg, logger)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Only the remote clock has a dependency worth probing.
	if cfg.Clock.Source == config.ClockSourceRemote {
		registry := do.MustInvoke[ports.HealthRegistry](injector)
		registry.Register(do.MustInvoke[*timesource.Client](injector))
	}

	logger.Info("period service configured",
		slog.String("profile", profile),
		slog.String("clock", cfg.Clock.Source),
		slog.String("timezone", cfg.Period.Timezone),
		slog.Int("max_steps", cfg.Period.MaxSteps),
		slog.Int("max_batch", cfg.Period.MaxBatch),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, server, logger)
}

// serve runs server until ctx is canceled or the listener fails, then drains
// in-flight requests.
func serve(ctx context.Context, server *adapthttp.Server, logger *slog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-serverErr

	logger.Info("shutdown complete")
	return nil
}

func flushTelemetry(p *telemetry.Providers, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()

	if err := p.Shutdown(ctx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*timesource.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		client := httpclient.New(&cfg.Clock.Client, "timesource", metrics, logger)
		return timesource.New(client, cfg.Clock.Path, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.Clock, error) {
		if cfg.Clock.Source == config.ClockSourceRemote {
			return do.MustInvoke[*timesource.Client](i), nil
		}
		return clock.System{}, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.PeriodService, error) {
		c := do.MustInvoke[ports.Clock](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewPeriodService(c, cfg.Period, metrics, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.WithCheckTimeout(cfg.Clock.Client.Timeout)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.PeriodHandler, error) {
		return handlers.NewPeriodHandler(do.MustInvoke[ports.PeriodService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		periodH := do.MustInvoke[*handlers.PeriodHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(periodH, healthH, middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		)), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[nethttp.Handler](i), logger), nil
	})
}
