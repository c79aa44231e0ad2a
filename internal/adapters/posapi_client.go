package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
)

const (
	checkAPIPath       = "/checkApi"
	sendDataPath       = "/sendData"
	getInformationPath = "/getInformation"
	putPath            = "/put"
	returnBillPath     = "/returnBill"
	callFunctionPath   = "/callFunction"

	requestIDHeader = "X-Request-ID"
)

type (
	PosAPIClient struct {
		client         *resty.Client
		circuitBreaker *gobreaker.CircuitBreaker
		logger         infrastructure.Logger
		metrics        infrastructure.Metrics
	}

	dataRequest struct {
		Data any `json:"data"`
	}

	functionRequest struct {
		FunctionName string `json:"functionName"`
		Data         any    `json:"data"`
	}
)

func NewPosAPIClient(cfg config.PosAPIConfig, logger infrastructure.Logger, metrics infrastructure.Metrics) *PosAPIClient {
	logger = logger.Component("posapi_client")

	client := resty.New()

	// Every operation maps to exactly one network call, so resty must never retry.
	client.SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Accept", "application/json")

	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	if metrics == nil {
		metrics = &infrastructure.NoOpMetrics{}
	}

	return &PosAPIClient{
		client:         client,
		circuitBreaker: newCircuitBreaker("posapi", cfg.CircuitBreaker, logger),
		logger:         logger,
		metrics:        metrics,
	}
}

func newCircuitBreaker(name string, cfg config.CircuitBreakerConfig, logger infrastructure.Logger) *gobreaker.CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
		},
		// A caller giving up says nothing about the health of the fiscal service.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

func (c *PosAPIClient) CheckAPI(ctx context.Context) (domain.CheckAPIResult, error) {
	var result domain.CheckAPIResult

	err := c.exchange(ctx, http.MethodGet, checkAPIPath, nil, func(body []byte) (err error) {
		result, err = decodeCheckAPI(body)
		return err
	})

	return result, err
}

func (c *PosAPIClient) SendData(ctx context.Context) (domain.SendDataResult, error) {
	var result domain.SendDataResult

	err := c.exchange(ctx, http.MethodGet, sendDataPath, nil, func(body []byte) (err error) {
		result, err = decodeOperationResult(body)
		return err
	})

	return result, err
}

func (c *PosAPIClient) GetInformation(ctx context.Context) (domain.PosInformation, error) {
	var info domain.PosInformation

	err := c.exchange(ctx, http.MethodGet, getInformationPath, nil, func(body []byte) (err error) {
		info, err = decodePosInformation(body)
		return err
	})

	return info, err
}

func (c *PosAPIClient) Put(ctx context.Context, bill domain.BillPayload) (domain.PutResult, error) {
	if bill == nil {
		return domain.PutResult{}, fmt.Errorf("%w: nil bill", domain.ErrInvalidPayload)
	}

	var result domain.PutResult

	err := c.exchange(ctx, http.MethodPost, putPath, dataRequest{Data: bill}, func(body []byte) (err error) {
		result, err = decodePutResult(body)
		return err
	})

	return result, err
}

func (c *PosAPIClient) ReturnBill(ctx context.Context, req domain.ReturnBillRequest) (domain.ReturnBillResult, error) {
	var result domain.ReturnBillResult

	err := c.exchange(ctx, http.MethodPost, returnBillPath, dataRequest{Data: req}, func(body []byte) (err error) {
		result, err = decodeOperationResult(body)
		return err
	})

	return result, err
}

func (c *PosAPIClient) CallFunction(ctx context.Context, functionName string, data any) (string, error) {
	var result string

	payload := functionRequest{FunctionName: functionName, Data: data}

	err := c.exchange(ctx, http.MethodPost, callFunctionPath, payload, func(body []byte) (err error) {
		result, err = decodeFunctionResult(body)
		return err
	})

	return result, err
}

// exchange performs one request through the circuit breaker and hands the reply body to decode.
// Every returned error is a *domain.TransportError.
func (c *PosAPIClient) exchange(ctx context.Context, method, path string, body any, decode func([]byte) error) error {
	startTime := time.Now()

	err := c.execute(func() error {
		return c.roundTrip(ctx, method, path, body, decode)
	})

	c.metrics.RecordPosAPIRequest(ctx, path, err == nil, time.Since(startTime))

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn().Str("endpoint", path).Msg("circuit breaker is open")

		return domain.NewTransportError(path, 0, fmt.Errorf("%w: %w", domain.ErrCircuitOpen, err))
	}

	return err
}

func (c *PosAPIClient) execute(fn func() error) error {
	if c.circuitBreaker == nil {
		return fn()
	}

	_, err := c.circuitBreaker.Execute(func() (any, error) {
		return nil, fn()
	})

	return err
}

func (c *PosAPIClient) roundTrip(ctx context.Context, method, path string, body any, decode func([]byte) error) error {
	requestID := uuid.NewString()

	req := c.client.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, requestID)

	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	startTime := time.Now()

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("endpoint", path).
			Str("request_id", requestID).
			Msg("PosAPI request failed")

		return domain.NewTransportError(path, 0, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", path).
		Str("request_id", requestID).
		Int("status_code", resp.StatusCode()).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Int("size_bytes", len(resp.Body())).
		Msg("PosAPI request completed")

	if !resp.IsSuccess() {
		// Some builds report service failures with an error status and a regular envelope.
		if header, headerErr := decodeEnvelope(resp.Body()); headerErr == nil && !header.succeeded() {
			if err := decode(resp.Body()); err == nil {
				return nil
			}
		}

		return domain.NewTransportError(path, resp.StatusCode(), fmt.Errorf("HTTP %d: %s", resp.StatusCode(), resp.Status()))
	}

	if err := decode(resp.Body()); err != nil {
		c.logger.Error().
			Err(err).
			Str("endpoint", path).
			Str("request_id", requestID).
			Msg("unable to decode PosAPI response")

		return domain.NewTransportError(path, resp.StatusCode(), err)
	}

	return nil
}
