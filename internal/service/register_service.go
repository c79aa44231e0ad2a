package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/infrastructure"
	"github.com/zolbooo/ebarimt/internal/ports"
)

const (
	tracerName = "github.com/zolbooo/ebarimt/internal/service"

	toRegFunction = "toReg"

	triggerInitialize     = "initialize"
	triggerLotteryWarning = "lottery_warning"
	triggerManual         = "manual"

	billAccepted = "accepted"
	billRejected = "rejected"
	billError    = "error"
)

type (
	RegisterService interface {
		Initialize(ctx context.Context) domain.InitOutcome
		CheckAPI(ctx context.Context) (domain.CheckAPIResult, error)
		Put(ctx context.Context, bill domain.BillPayload) (domain.PutResult, error)
		SendData(ctx context.Context) (domain.SendDataResult, error)
		ReturnBill(ctx context.Context, req domain.ReturnBillRequest) (domain.ReturnBillResult, error)
		GetInformation(ctx context.Context) (domain.PosInformation, error)
		ToReg(ctx context.Context, regNo string) (string, error)
		Wait(ctx context.Context) error
	}

	registerService struct {
		posAPI        ports.PosAPI
		runner        ports.BackgroundRunner
		tracer        trace.Tracer
		metrics       infrastructure.Metrics
		logger        infrastructure.Logger
		resyncTimeout time.Duration
	}
)

func NewRegisterService(
	posAPI ports.PosAPI,
	runner ports.BackgroundRunner,
	tracerProvider trace.TracerProvider,
	metrics infrastructure.Metrics,
	logger infrastructure.Logger,
	resyncTimeout time.Duration,
) RegisterService {
	return &registerService{
		posAPI:        posAPI,
		runner:        runner,
		tracer:        tracerProvider.Tracer(tracerName),
		metrics:       metrics,
		logger:        logger.Component("register_service"),
		resyncTimeout: resyncTimeout,
	}
}

// Initialize checks the fiscal service and repairs stale local data with at most one resync.
// A healthy first check returns Ready without a second check; the second check only runs on the
// recovery path, and its result is Ready whatever its subsystem statuses say.
func (s *registerService) Initialize(ctx context.Context) domain.InitOutcome {
	ctx, span := s.tracer.Start(ctx, "RegisterService.Initialize")
	defer span.End()

	outcome := s.initialize(ctx)

	result := "ready"
	if !outcome.Ready() {
		result = "failed"
		span.SetStatus(codes.Error, string(outcome.Cause))
	}

	span.SetAttributes(
		attribute.String("init.outcome", result),
		attribute.Bool("init.resynced", outcome.Resynced),
	)

	s.metrics.RecordInitOutcome(ctx, result, string(outcome.Cause))

	var event *zerolog.Event
	if outcome.Ready() {
		event = s.logger.Info()
	} else {
		event = s.logger.Error().Err(outcome.Failure())
	}

	event.
		Str("outcome", result).
		Str("cause", string(outcome.Cause)).
		Bool("resynced", outcome.Resynced).
		Msg("PosAPI initialization finished")

	return outcome
}

func (s *registerService) initialize(ctx context.Context) domain.InitOutcome {
	first, err := s.posAPI.CheckAPI(ctx)
	if err != nil {
		return domain.InitialCheckFailed(nil, err)
	}

	if !first.NeedsResync() {
		if first.Success {
			return domain.ReadyOutcome(first, false)
		}

		return domain.InitialCheckFailed(&first, nil)
	}

	s.logger.Warn().
		Str("config_status", first.Config.Message).
		Msg("local register data is stale, resynchronizing")

	sent, err := s.posAPI.SendData(ctx)
	s.metrics.RecordResync(ctx, triggerInitialize, err == nil && sent.Success)

	if err != nil {
		return domain.ResyncFailed(nil, err)
	}

	if !sent.Success {
		return domain.ResyncFailed(&sent, nil)
	}

	second, err := s.posAPI.CheckAPI(ctx)
	if err != nil {
		return domain.InitialCheckFailed(&first, err)
	}

	if failed := second.FailedSubsystems(); len(failed) > 0 {
		s.logger.Warn().
			Strs("failed_subsystems", failed).
			Msg("PosAPI still reports unhealthy subsystems after resync")
	}

	return domain.ReadyOutcome(second, true)
}

func (s *registerService) CheckAPI(ctx context.Context) (domain.CheckAPIResult, error) {
	ctx, span := s.tracer.Start(ctx, "RegisterService.CheckAPI")
	defer span.End()

	result, err := s.posAPI.CheckAPI(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
	}

	return result, err
}

func (s *registerService) Put(ctx context.Context, bill domain.BillPayload) (domain.PutResult, error) {
	ctx, span := s.tracer.Start(ctx, "RegisterService.Put")
	defer span.End()

	result, err := s.posAPI.Put(ctx, bill)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		s.metrics.RecordBillSubmission(ctx, billError)

		return domain.PutResult{}, fmt.Errorf("failed to submit bill: %w", err)
	}

	if !result.Success {
		s.metrics.RecordBillSubmission(ctx, billRejected)
		s.logger.Warn().
			Str("error_code", result.ErrorCode.String()).
			Str("message", result.Message).
			Msg("PosAPI rejected bill")

		return result, nil
	}

	s.metrics.RecordBillSubmission(ctx, billAccepted)
	if result.Receipt != nil {
		span.SetAttributes(attribute.String("bill.id", result.Receipt.BillID))
	}

	if result.HasLotteryWarning() {
		billID, warning := result.Receipt.BillID, result.Receipt.LotteryWarningMessage

		s.logger.Warn().
			Str("bill_id", billID).
			Str("lottery_warning", warning).
			Msg("bill accepted with lottery warning, scheduling resync")

		// The bill is already registered: the resync runs detached and its outcome only
		// reaches logs and metrics, never this result.
		s.runner.Go(ctx, "lottery_resync", func(ctx context.Context) {
			s.resyncAfterLotteryWarning(ctx, billID)
		})
	}

	return result, nil
}

func (s *registerService) resyncAfterLotteryWarning(ctx context.Context, billID string) {
	ctx, cancel := context.WithTimeout(ctx, s.resyncTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "RegisterService.LotteryResync")
	defer span.End()

	sent, err := s.posAPI.SendData(ctx)
	s.metrics.RecordResync(ctx, triggerLotteryWarning, err == nil && sent.Success)

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		s.logger.Error().
			Err(err).
			Str("bill_id", billID).
			Msg("background resync after lottery warning failed")

	case !sent.Success:
		span.SetStatus(codes.Error, sent.Message)
		s.logger.Error().
			Str("bill_id", billID).
			Str("error_code", sent.ErrorCode.String()).
			Str("message", sent.Message).
			Msg("PosAPI rejected background resync after lottery warning")

	default:
		s.logger.Info().
			Str("bill_id", billID).
			Msg("background resync after lottery warning completed")
	}
}

func (s *registerService) SendData(ctx context.Context) (domain.SendDataResult, error) {
	ctx, span := s.tracer.Start(ctx, "RegisterService.SendData")
	defer span.End()

	result, err := s.posAPI.SendData(ctx)
	s.metrics.RecordResync(ctx, triggerManual, err == nil && result.Success)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
	}

	return result, err
}

func (s *registerService) ReturnBill(ctx context.Context, req domain.ReturnBillRequest) (domain.ReturnBillResult, error) {
	if strings.TrimSpace(req.ReturnBillID) == "" {
		return domain.ReturnBillResult{}, domain.NewInvalidArgumentError("return bill id", "must not be empty")
	}

	if req.Date.IsZero() {
		return domain.ReturnBillResult{}, domain.NewInvalidArgumentError("return bill date", "must be set")
	}

	ctx, span := s.tracer.Start(ctx, "RegisterService.ReturnBill",
		trace.WithAttributes(attribute.String("bill.id", req.ReturnBillID)),
	)
	defer span.End()

	result, err := s.posAPI.ReturnBill(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
	}

	return result, err
}

func (s *registerService) GetInformation(ctx context.Context) (domain.PosInformation, error) {
	ctx, span := s.tracer.Start(ctx, "RegisterService.GetInformation")
	defer span.End()

	info, err := s.posAPI.GetInformation(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
	}

	return info, err
}

// ToReg converts a registration number to the form the register expects.
func (s *registerService) ToReg(ctx context.Context, regNo string) (string, error) {
	regNo = strings.TrimSpace(regNo)
	if regNo == "" {
		return "", domain.NewInvalidArgumentError("registration number", "must not be empty")
	}

	ctx, span := s.tracer.Start(ctx, "RegisterService.ToReg")
	defer span.End()

	converted, err := s.posAPI.CallFunction(ctx, toRegFunction, regNo)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")

		return "", fmt.Errorf("failed to convert registration number: %w", err)
	}

	return converted, nil
}

// Wait drains background resyncs scheduled by Put.
func (s *registerService) Wait(ctx context.Context) error {
	return s.runner.Wait(ctx)
}
