package ebarimt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zolbooo/ebarimt/internal/adapters"
	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
	"github.com/zolbooo/ebarimt/internal/ports"
	"github.com/zolbooo/ebarimt/internal/service"
)

// Client is a register bound to one PosAPI instance. It is safe for concurrent use.
type Client struct {
	service service.RegisterService
}

// New returns a client for the PosAPI at baseURL, DefaultBaseURL when empty.
func New(baseURL string, opts ...Option) (*Client, error) {
	options := defaultClientOptions()
	for _, opt := range opts {
		opt(&options)
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if err := config.ValidateBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid PosAPI base URL: %w", err)
	}

	if err := options.validate(); err != nil {
		return nil, err
	}

	logger := infrastructure.Logger{Logger: options.logger}
	metrics := &infrastructure.NoOpMetrics{}

	posAPI := adapters.NewPosAPIClient(config.PosAPIConfig{
		BaseURL:        baseURL,
		Timeout:        options.timeout,
		ResyncTimeout:  options.resyncTimeout,
		UserAgent:      options.userAgent,
		CircuitBreaker: options.circuitBreaker,
	}, logger, metrics)

	return newClient(posAPI, adapters.NewDetachedRunner(logger), options, metrics), nil
}

func newClient(posAPI ports.PosAPI, runner ports.BackgroundRunner, options clientOptions, metrics infrastructure.Metrics) *Client {
	logger := infrastructure.Logger{Logger: options.logger}

	return &Client{
		service: service.NewRegisterService(
			posAPI,
			runner,
			options.tracerProvider,
			metrics,
			logger,
			options.resyncTimeout,
		),
	}
}

func (o clientOptions) validate() error {
	switch {
	case o.timeout <= 0:
		return errors.New("timeout must be positive")
	case o.resyncTimeout <= 0:
		return errors.New("resync timeout must be positive")
	case o.circuitBreaker.Enabled && (o.circuitBreaker.FailureRatio <= 0 || o.circuitBreaker.FailureRatio > 1):
		return fmt.Errorf("circuit breaker failure ratio must be in (0, 1], got %v", o.circuitBreaker.FailureRatio)
	}

	return nil
}

// Initialize checks the PosAPI and repairs stale local data. The register is usable when the
// outcome is Ready.
func (c *Client) Initialize(ctx context.Context) InitOutcome {
	return c.service.Initialize(ctx)
}

func (c *Client) CheckAPI(ctx context.Context) (CheckAPIResult, error) {
	return c.service.CheckAPI(ctx)
}

// Put registers a bill. Use Bill, BatchBill or RawBill as the payload.
func (c *Client) Put(ctx context.Context, bill BillPayload) (PutResult, error) {
	return c.service.Put(ctx, bill)
}

// SendData forwards the local ledger to the central tax server.
func (c *Client) SendData(ctx context.Context) (SendDataResult, error) {
	return c.service.SendData(ctx)
}

// ReturnBill reverses a previously registered bill.
func (c *Client) ReturnBill(ctx context.Context, req ReturnBillRequest) (ReturnBillResult, error) {
	return c.service.ReturnBill(ctx, req)
}

func (c *Client) GetInformation(ctx context.Context) (PosInformation, error) {
	return c.service.GetInformation(ctx)
}

func (c *Client) ToReg(ctx context.Context, regNo string) (string, error) {
	return c.service.ToReg(ctx, regNo)
}

// Close waits for background resyncs started by Put until ctx is done.
func (c *Client) Close(ctx context.Context) error {
	return c.service.Wait(ctx)
}
