package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/shared/backoff"
)

// ServiceCtx runs the register sidecar: it initializes the register, serves the HTTP
// endpoints and shuts down gracefully.
type ServiceCtx struct {
	cfg  *config.ServiceConfig
	deps *Dependencies

	dependencyOptions []DependencyOption

	shutdownChannel chan os.Signal

	serverCtx      context.Context
	serverStopFunc context.CancelFunc
	serverErrors   chan error

	serverReady chan struct{}
}

func New(cfg *config.ServiceConfig, opt ...ServiceOption) *ServiceCtx {
	sCtx := &ServiceCtx{
		cfg:             cfg,
		shutdownChannel: make(chan os.Signal, 1),
		serverErrors:    make(chan error, 1),
	}

	for i := range opt {
		opt[i](sCtx)
	}

	return sCtx
}

// Run blocks until ctx is done, a termination signal arrives or the server fails.
func (c *ServiceCtx) Run(ctx context.Context) error {
	if err := c.build(ctx); err != nil {
		return err
	}

	if err := c.initializeRegister(); err != nil {
		c.closeDependencies()

		return err
	}

	c.startService()
	c.shutdownHook()

	return c.shutdown(ctx)
}

// build initializes the service components
func (c *ServiceCtx) build(ctx context.Context) error {
	c.serverCtx, c.serverStopFunc = context.WithCancel(ctx)

	opts := append([]DependencyOption{WithHTTPServer()}, c.dependencyOptions...)

	deps, err := NewDependencies(c.serverCtx, c.cfg, opts...)
	if err != nil {
		c.serverStopFunc()

		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	c.deps = deps

	return nil
}

// initializeRegister runs Initialize, retrying with backoff while the PosAPI is unreachable.
// Failures reported by the service itself are final.
func (c *ServiceCtx) initializeRegister() error {
	strategy := backoff.NewExponentialStrategy(c.cfg.Backoff)
	maxAttempts := max(c.cfg.Backoff.MaxAttempts, 1)

	for attempt := 1; ; attempt++ {
		outcome := c.deps.Services.Register.Initialize(c.serverCtx)
		if outcome.Ready() {
			return nil
		}

		if !errors.Is(outcome.Err, domain.ErrTransport) || attempt >= maxAttempts {
			c.serverStopFunc()

			return outcome.Failure()
		}

		delay := strategy.Backoff(attempt - 1)

		c.deps.logger.Warn().
			Err(outcome.Err).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("posapi unreachable, retrying initialization")

		select {
		case <-c.serverCtx.Done():
			c.serverStopFunc()

			return fmt.Errorf("initialization aborted: %w", c.serverCtx.Err())
		case <-time.After(delay):
		}
	}
}

// startService starts the HTTP server
func (c *ServiceCtx) startService() {
	go func() {
		c.deps.logger.Info().
			Str("address", c.deps.Infra.HTTPServer.Addr).
			Msg("service starting up")

		if c.serverReady != nil {
			c.serverReady <- struct{}{}
		}

		if err := c.deps.Infra.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.deps.logger.Error().Err(err).Msg("unable to start http server")
			c.serverErrors <- err
		}
	}()
}

func (c *ServiceCtx) shutdownHook() {
	signal.Notify(c.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
}

func (c *ServiceCtx) shutdown(ctx context.Context) error {
	defer signal.Stop(c.shutdownChannel)

	var serveErr error

	// Waits for one of the following shutdown conditions to happen.
	select {
	case <-ctx.Done():
	case <-c.shutdownChannel:
	case serveErr = <-c.serverErrors:
	}

	c.deps.logger.Info().Msg("received shutdown signal")

	// Cancel context that underlying processes would start cleanup.
	c.serverStopFunc()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	c.cleanup(shutdownCtx)

	c.deps.logger.Info().Msg("HTTP server shutdown completed")

	return serveErr
}

// WaitForServer blocks until the http server is running.
// If you want to be notified when the server is running,
// make sure you instantiate your server with WithWaitingForServer.
//
// Example:
//
//	srv := runtime.New(cfg, WithWaitingForServer())
//	go func() {
//		_ = srv.Run(ctx)
//	}()
//
//	srv.WaitForServer()
func (c *ServiceCtx) WaitForServer() {
	if c.serverReady != nil {
		<-c.serverReady
		close(c.serverReady)
	}
}

func (c *ServiceCtx) cleanup(shutdownCtx context.Context) {
	c.deps.logger.Info().Msg("cleaning up resources...")

	// Trigger graceful shutdown of the http server
	if err := c.deps.Infra.HTTPServer.Shutdown(shutdownCtx); err != nil {
		c.deps.logger.Error().Err(err).Msg("unable to gracefully shutdown http server")
	}

	if err := c.deps.Close(shutdownCtx); err != nil {
		c.deps.logger.Error().Err(err).Msg("unable to release dependencies")
	}

	c.deps.logger.Info().Msg("cleanup completed")
}

func (c *ServiceCtx) closeDependencies() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	_ = c.deps.Close(shutdownCtx)
}
