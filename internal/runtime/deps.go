package runtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/zolbooo/ebarimt/internal/adapters/middleware"
	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
	"github.com/zolbooo/ebarimt/internal/ports"
	"github.com/zolbooo/ebarimt/internal/service"
)

const (
	healthPath      = "/healthz"
	livenessPath    = "/livez"
	informationPath = "/v1/information"
	metricsPath     = "/metrics"
)

type (
	TracerShutdownFunc func(ctx context.Context) error

	InfrastructureDeps struct {
		HTTPServer *http.Server
		Metrics    infrastructure.Metrics
		Runner     ports.BackgroundRunner
	}

	Adapters struct {
		PosAPI           ports.PosAPI
		MerchantRegistry ports.MerchantRegistry
	}

	Services struct {
		Register service.RegisterService
	}

	Dependencies struct {
		Infra    InfrastructureDeps
		Adapters Adapters
		Services Services

		cfg    *config.ServiceConfig
		logger infrastructure.Logger

		tracerShutdownFunc TracerShutdownFunc
	}
)

// NewDependencies wires the register from cfg. The default options build metrics, tracing,
// the PosAPI adapter and the register service; opts add to them.
func NewDependencies(ctx context.Context, cfg *config.ServiceConfig, opts ...DependencyOption) (*Dependencies, error) {
	appLogger := infrastructure.New(cfg.Logging)

	appLogger.Debug().Msg("initializing dependencies...")

	deps := &Dependencies{
		cfg:    cfg,
		logger: appLogger,
	}

	// Start with default options and append any additional options.
	options := append(defaultOptions(ctx), opts...)

	for _, opt := range options {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	deps.logger.Debug().Msg("dependencies initialized successfully")

	return deps, nil
}

func (d *Dependencies) Config() *config.ServiceConfig {
	return d.cfg
}

func (d *Dependencies) Logger() infrastructure.Logger {
	return d.logger
}

// Close drains background resyncs and flushes telemetry.
func (d *Dependencies) Close(ctx context.Context) error {
	var errs []error

	if d.Services.Register != nil {
		if err := d.Services.Register.Wait(ctx); err != nil {
			d.logger.Error().Err(err).Msg("background resyncs did not finish")
			errs = append(errs, err)
		}
	}

	if d.Infra.Metrics != nil {
		if err := d.Infra.Metrics.Shutdown(ctx); err != nil {
			d.logger.Error().Err(err).Msg("failed to shutdown metrics")
			errs = append(errs, err)
		}
	}

	if d.tracerShutdownFunc != nil {
		if err := d.tracerShutdownFunc(ctx); err != nil {
			d.logger.Error().Err(err).Msg("failed to shutdown tracer")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func initHTTPServer(
	cfg *config.ServiceConfig,
	logger infrastructure.Logger,
	metrics infrastructure.Metrics,
	reqHandler ports.RequestHandler,
) *http.Server {
	logger.Info().Msg("creating HTTP server...")

	router := chi.NewRouter()

	router.Use(initMiddlewares(cfg, logger, metrics)...)

	router.Get(healthPath, reqHandler.HealthCheck)
	router.Get(livenessPath, reqHandler.LivenessCheck)
	router.Get(informationPath, reqHandler.GetInformation)
	router.Method(http.MethodGet, metricsPath, metrics.Handler())

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPServer.Host, strconv.Itoa(cfg.HTTPServer.Port)),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	logger.Info().Str("addr", server.Addr).Msg("HTTP server created")

	return server
}

func initMiddlewares(
	cfg *config.ServiceConfig,
	logger infrastructure.Logger,
	metrics infrastructure.Metrics,
) []func(http.Handler) http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		chimiddleware.Timeout(cfg.HTTPServer.WriteTimeout),
	}

	if cfg.Telemetry.Metrics.Enabled {
		middlewares = append(middlewares, middleware.NewMetricsMiddleware(metrics).Middleware)
		logger.Info().Msg("HTTP metrics collection enabled")
	}

	if cfg.HTTPServer.AccessLog.Enabled {
		healthFilter := middleware.NewHealthCheckFilter(cfg.HTTPServer.AccessLog.LogHealthChecks, healthPath, livenessPath, metricsPath)
		accessLogger := middleware.NewAccessLogger(logger.Logger)

		middlewares = append(middlewares, healthFilter.Middleware, accessLogger.Middleware)
		logger.Info().
			Bool("log_health_checks", cfg.HTTPServer.AccessLog.LogHealthChecks).
			Msg("structured access logging enabled")
	}

	return middlewares
}
