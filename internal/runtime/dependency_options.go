package runtime

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/zolbooo/ebarimt/internal/adapters"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
	"github.com/zolbooo/ebarimt/internal/service"
)

type (
	DependencyOption func(*Dependencies) error
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithMetrics(ctx),
		WithTracing(ctx),
		WithPosAPI(),
		WithRegisterService(),
	}
}

func WithMetrics(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		metrics, err := infrastructure.NewMetrics(ctx, *d.cfg, d.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}

		d.Infra.Metrics = metrics

		return nil
	}
}

func WithTracing(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		if !d.cfg.Telemetry.Traces.Enabled {
			d.tracerShutdownFunc = func(_ context.Context) error {
				return nil
			}

			return nil
		}

		tracerShutdownFunc, err := infrastructure.InitGlobalTracer(ctx, d.cfg.Telemetry, d.cfg.AppConfig)
		if err != nil {
			d.logger.Error().Err(err).Msg("failed to initialize global tracer")

			return err
		}

		d.tracerShutdownFunc = tracerShutdownFunc

		return nil
	}
}

func WithPosAPI() DependencyOption {
	return func(d *Dependencies) error {
		d.Adapters.PosAPI = adapters.NewPosAPIClient(d.cfg.PosAPI, d.logger, d.Infra.Metrics)
		d.Infra.Runner = adapters.NewDetachedRunner(d.logger)

		return nil
	}
}

func WithRegisterService() DependencyOption {
	return func(d *Dependencies) error {
		if d.Adapters.PosAPI == nil {
			return fmt.Errorf("register service requires the PosAPI adapter")
		}

		d.Services.Register = service.NewRegisterService(
			d.Adapters.PosAPI,
			d.Infra.Runner,
			otel.GetTracerProvider(),
			d.Infra.Metrics,
			d.logger,
			d.cfg.PosAPI.ResyncTimeout,
		)

		return nil
	}
}

func WithMerchantRegistry() DependencyOption {
	return func(d *Dependencies) error {
		d.Adapters.MerchantRegistry = adapters.NewMerchantRegistryClient(d.cfg.MerchantRegistry, d.logger)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *Dependencies) error {
		if d.Services.Register == nil {
			return fmt.Errorf("HTTP server requires the register service")
		}

		requestHandler := adapters.NewRequestHandler(
			d.Services.Register,
			d.cfg.AppConfig.ServiceVersion,
			d.logger,
		)

		d.Infra.HTTPServer = initHTTPServer(d.cfg, d.logger, d.Infra.Metrics, requestHandler)

		return nil
	}
}
